package api_router

import (
	"net/http"

	pkgapp "github.com/haierkeys/note-resource-service/pkg/app"

	"github.com/gin-gonic/gin"
)

var helloPage = []byte("<h1>Hello World</h1>")

// Hello 站点根路径
func Hello(c *gin.Context) {
	c.Set(pkgapp.StatusCodeKey, http.StatusOK)
	c.Data(http.StatusOK, "text/html; charset=utf-8", helloPage)
}
