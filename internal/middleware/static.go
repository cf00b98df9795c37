package middleware

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// assetFS 只把普通文件视为存在，目录（包括站点根 /）永远不命中
type assetFS struct {
	http.FileSystem
}

// NewAssetFS wraps a file system so that only regular files short-circuit the chain.
func NewAssetFS(fsys http.FileSystem) static.ServeFileSystem {
	return assetFS{FileSystem: fsys}
}

func (a assetFS) Exists(prefix string, filepath string) bool {
	p := strings.TrimPrefix(filepath, prefix)
	if len(p) == len(filepath) && prefix != "" {
		return false
	}
	f, err := a.Open(path.Clean("/" + p))
	if err != nil {
		return false
	}
	defer f.Close()

	st, err := f.Stat()
	return err == nil && !st.IsDir()
}

// Static serves GET and HEAD requests whose path names a bundled file and aborts the chain;
// everything else passes through untouched. Files are written with http.ServeContent,
// so /index.html is served as is rather than redirected to the directory.
// Static 请求路径命中资源文件时直接输出并中断后续处理
func Static(fsys static.ServeFileSystem) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			return
		}
		if !fsys.Exists("/", c.Request.URL.Path) {
			return
		}

		f, err := fsys.Open(path.Clean("/" + c.Request.URL.Path))
		if err != nil {
			return
		}
		defer f.Close()

		st, err := f.Stat()
		if err != nil || st.IsDir() {
			return
		}

		http.ServeContent(c.Writer, c.Request, st.Name(), st.ModTime(), f)
		c.Abort()
	}
}
