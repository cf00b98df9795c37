package middleware

import (
	"github.com/haierkeys/note-resource-service/pkg/app"
	"github.com/haierkeys/note-resource-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BindJSON binds and validates the decoded body into a T before the handler runs.
// On failure it answers with onInvalid and aborts; on success the handler reads
// the value with app.GetParams[T].
// BindJSON 在 handler 之前绑定并校验请求体，失败时输出 onInvalid 并中断
func BindJSON[T any](onInvalid *code.Code, lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := new(T)

		valid, errs := app.BindAndValid(c, params)
		if !valid {
			lg.Warn("BindJSON.BindAndValid err",
				zap.String("path", c.FullPath()),
				zap.Any("details", errs.MapsToString()),
				zap.String("traceId", GetTraceIDFromGin(c)),
			)
			app.NewResponse(c).ToResponse(onInvalid.WithDetails(errs.Errors()...))
			c.Abort()
			return
		}

		c.Set(app.ParamsKey, params)
		c.Next()
	}
}
