package middleware

import (
	"github.com/haierkeys/note-resource-service/pkg/app"
	"github.com/haierkeys/note-resource-service/pkg/convert"

	"github.com/gin-gonic/gin"
)

// NoteID parses the :id route parameter once for every id-bearing route.
// A parameter that is not a number leaves no id on the context, which handlers treat as "no such note".
// NoteID 为所有带 :id 的路由统一解析笔记 ID
func NoteID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := convert.StrTo(c.Param("id")).Number(); ok {
			c.Set(app.NoteIDKey, id)
		}
		c.Next()
	}
}
