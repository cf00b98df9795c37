package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CorsWithConfig 创建跨域中间件
// allowOrigins 含有 "*" 时允许所有来源；预检请求直接以 204 结束
func CorsWithConfig(allowOrigins, allowMethods, allowHeaders []string, maxAge int) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: allowMethods,
		AllowHeaders: allowHeaders,
		MaxAge:       time.Duration(maxAge) * time.Second,
	}
	if len(allowOrigins) == 0 || slices.Contains(allowOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowOrigins
	}
	return cors.New(cfg)
}
