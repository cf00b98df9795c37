package middleware

import (
	"time"

	"github.com/haierkeys/note-resource-service/pkg/app"
	"github.com/haierkeys/note-resource-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger records method, path and decoded body of every request that reaches it.
// It never short-circuits.
// RequestLogger 记录请求方法、路径与解码后的请求体，总是继续执行后续处理
func RequestLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()

		lg.Info("request",
			zap.String(logger.FieldMethod, c.Request.Method),
			zap.String(logger.FieldPath, c.Request.URL.Path),
			zap.Any(logger.FieldBody, app.GetBody(c)),
			zap.Int(logger.FieldStatus, c.Writer.Status()),
			zap.Duration(logger.FieldDuration, time.Since(startTime)),
			zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
		)
	}
}
