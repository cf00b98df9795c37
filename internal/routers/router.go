package routers

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/haierkeys/note-resource-service/internal/app"
	"github.com/haierkeys/note-resource-service/internal/dto"
	"github.com/haierkeys/note-resource-service/internal/middleware"
	"github.com/haierkeys/note-resource-service/internal/routers/api_router"
	"github.com/haierkeys/note-resource-service/pkg/code"
	"github.com/haierkeys/note-resource-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// NewRouter 创建 HTTP 路由
// assets 为前端资源根目录；配置了 static.dir 时改用磁盘目录
//
// 处理顺序：recovery、trace、metrics、lang 之后依次是
// cors -> 请求体解码 -> 静态资源 -> 请求日志 -> 路由分发
func NewRouter(assets fs.FS, appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()
	logger := appContainer.Logger()

	var staticFS http.FileSystem
	if cfg.Static.Dir != "" {
		staticFS = http.Dir(cfg.Static.Dir)
	} else {
		staticFS = http.FS(assets)
	}

	metrics := middleware.NewMetrics(appContainer.Registry())

	r := gin.New()
	// 带结尾斜杠的路径与不带斜杠的路径匹配同一个 handler，不做重定向
	r.RedirectTrailingSlash = false

	r.Use(middleware.RecoveryWithLogger(logger))
	r.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.TracerEnabled(), cfg.Tracer.Header)) // Trace ID 中间件
	r.Use(metrics.Handler())
	r.Use(middleware.LangWithTranslator(uni))

	r.Use(middleware.CorsWithConfig(cfg.Cors.AllowOrigins, cfg.Cors.AllowMethods, cfg.Cors.AllowHeaders, cfg.Cors.MaxAge))
	r.Use(middleware.BodyDecoder(cfg.Notes.MaxBodySize))
	r.Use(middleware.Static(middleware.NewAssetFS(staticFS)))
	r.Use(middleware.RequestLogger(logger))

	r.GET("/", api_router.Hello)

	noteHandler := api_router.NewNoteHandler(appContainer)

	api := r.Group("/api")
	if cfg.Limiter.Enabled {
		api.Use(middleware.RateLimiter(newRouteLimiter(cfg.Limiter)))
	}
	bindCreate := middleware.BindJSON[dto.NoteCreateRequest](code.ErrorContentMissing, logger)

	// 所有带 :id 的路由共用同一个解析步骤
	note := api.Group("/notes/:id", middleware.NoteID())

	for _, slash := range []string{"", "/"} {
		api.GET("/notes"+slash, noteHandler.List)
		api.POST("/notes"+slash, bindCreate, noteHandler.Create)

		note.GET(slash, noteHandler.Get)
		note.PUT(slash, noteHandler.ToggleImportant)
		note.DELETE(slash, noteHandler.Delete)
	}

	if cfg.Server.UnknownEndpointEnabled() {
		r.NoRoute(middleware.NoFound())
	}

	return r
}

// newRouteLimiter 为每个笔记路由模板创建一个令牌桶
func newRouteLimiter(cfg app.LimiterConfig) limiter.Face {
	fill := time.Duration(cfg.FillInterval) * time.Millisecond
	return limiter.NewRouteLimiter().AddBuckets(
		limiter.BucketRule{Key: "/api/notes", FillInterval: fill, Capacity: cfg.Capacity, Quantum: cfg.Quantum},
		limiter.BucketRule{Key: "/api/notes/:id", FillInterval: fill, Capacity: cfg.Capacity, Quantum: cfg.Quantum},
	)
}
