package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/haierkeys/note-resource-service/pkg/app"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
)

// BodyDecoder decodes a JSON object body once and keeps it on the context.
// Bodies that are absent, not JSON, not an object, malformed or larger than maxBytes
// decode to an empty object; the request is never rejected here.
// BodyDecoder 解码一次 JSON 对象请求体并保存在上下文中，失败时得到空对象，不会拒绝请求
func BodyDecoder(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := map[string]any{}
		var raw []byte

		if c.Request.Body != nil && c.Request.Body != http.NoBody {
			data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBytes+1))
			_ = c.Request.Body.Close()

			if err == nil && int64(len(data)) <= maxBytes && isJSONContentType(c.ContentType()) {
				var decoded map[string]any
				if err := sonic.Unmarshal(data, &decoded); err == nil && decoded != nil {
					body = decoded
					raw = data
				}
			}

			// 还原请求体，后续步骤仍可读取
			c.Request.Body = io.NopCloser(bytes.NewReader(data))
		}

		c.Set(app.BodyKey, body)
		c.Set(app.RawBodyKey, raw)
		c.Next()
	}
}

func isJSONContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	return ct == "application/json" || strings.HasSuffix(ct, "+json")
}
