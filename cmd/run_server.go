package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	internalApp "github.com/haierkeys/note-resource-service/internal/app"
	"github.com/haierkeys/note-resource-service/internal/dao"
	"github.com/haierkeys/note-resource-service/internal/routers"
	"github.com/haierkeys/note-resource-service/internal/task"
	"github.com/haierkeys/note-resource-service/pkg/fileurl"
	"github.com/haierkeys/note-resource-service/pkg/logger"
	"github.com/haierkeys/note-resource-service/pkg/safe_close"
	"github.com/haierkeys/note-resource-service/pkg/validator"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"go.uber.org/zap"
)

// portEnv 端口环境变量，优先级低于 -p 参数，高于配置文件
const portEnv = "PORT"

type Server struct {
	logger            *zap.Logger             // 日志对象
	config            *internalApp.AppConfig  // 应用配置（注入的依赖）
	ut                *ut.UniversalTranslator // 翻译器
	store             *dao.NoteStore          // 笔记存储，由进程持有，配置重载后继续使用
	httpServer        *http.Server
	privateHttpServer *http.Server
	sc                *safe_close.SafeClose
	app               *internalApp.App // App Container
}

// resolveHTTPAddr 按 -p 参数、PORT 环境变量、配置文件的顺序确定监听地址
// 纯数字端口补全为 ":port"
func resolveHTTPAddr(flagPort, envPort, configured string) string {
	addr := configured
	for _, p := range []string{flagPort, envPort} {
		if p = strings.TrimSpace(p); p != "" {
			addr = p
			break
		}
	}
	if addr != "" && !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	return addr
}

// NewServer 加载配置并启动 HTTP 服务
// store 为 nil 时按配置新建（首次启动），配置热重载时传入已有的存储
func NewServer(runEnv *runFlags, store *dao.NoteStore) (*Server, error) {

	// 使用 LoadConfig 直接加载配置到 AppConfig
	appConfig, configRealpath, err := internalApp.LoadConfig(runEnv.config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 确定运行模式
	runMode := runEnv.runMode
	if len(runMode) <= 0 {
		runMode = appConfig.Server.RunMode
	}
	switch runMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(runMode)
	default:
		return nil, fmt.Errorf("unknown run mode %q", runMode)
	}

	appConfig.Server.HttpPort = resolveHTTPAddr(runEnv.port, os.Getenv(portEnv), appConfig.Server.HttpPort)

	s := &Server{
		config: appConfig,
		sc:     safe_close.NewSafeClose(),
	}

	// 初始化日志器（使用注入的配置）
	if err := initLoggerWithConfig(s, appConfig); err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}

	if store == nil {
		opts := []dao.NoteStoreOption{dao.WithLogger(s.logger)}
		if appConfig.Notes.SeedEnabled() {
			opts = append(opts, dao.WithSeed(dao.DefaultSeed()))
		}
		store = dao.NewNoteStore(opts...)
	}
	s.store = store

	// 初始化 App Container
	app, err := internalApp.NewApp(appConfig, s.logger, store)
	if err != nil {
		return nil, fmt.Errorf("failed to create app container: %w", err)
	}
	s.app = app

	// 初始化验证器
	uni, err := validator.Setup()
	if err != nil {
		return nil, fmt.Errorf("initValidator: %w", err)
	}
	s.ut = uni

	assets, err := fs.Sub(frontendFiles, "frontend")
	if err != nil {
		return nil, fmt.Errorf("frontend assets: %w", err)
	}
	if dir := appConfig.Static.Dir; dir != "" && !fileurl.IsDir(dir) {
		s.logger.Warn("static dir not found, requests will fall through", zap.String("dir", dir))
	}

	s.logger.Warn(fmt.Sprintf("\n\n%s v%s\nGit: %s\nBuildTime: %s\n", internalApp.Name, internalApp.Version, internalApp.GitTag, internalApp.BuildTime))
	s.logger.Warn("config loaded", zap.String("path", configRealpath))

	// 启动 HTTP API 服务器
	if httpAddr := appConfig.Server.HttpPort; len(httpAddr) > 0 {
		s.logger.Warn("api_router", zap.String("config.server.HttpPort", httpAddr))
		s.httpServer = &http.Server{
			Addr:           httpAddr,
			Handler:        routers.NewRouter(assets, s.app, s.ut),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		s.attachHTTPServer("api service", s.httpServer)
	}

	if httpAddr := appConfig.Server.PrivateHttpListen; len(httpAddr) > 0 {
		s.logger.Info("api_router", zap.String("config.server.PrivateHttpListen", httpAddr))
		s.privateHttpServer = &http.Server{
			Addr:           httpAddr,
			Handler:        routers.NewPrivateRouterWithLogger(runMode, s.logger, s.app.Registry()),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		s.attachHTTPServer("private api service", s.privateHttpServer)
	}

	// 启动调度器
	manager := task.NewManager(s.logger, s.sc, s.app)
	manager.RegisterTasks()
	manager.Start()

	// 注册 App Container 的优雅关闭
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal

		ctx, cancel := context.WithTimeout(context.Background(), internalApp.DefaultShutdownTimeout)
		defer cancel()

		if err := s.app.Shutdown(ctx); err != nil {
			s.logger.Error("failed to shutdown app container", zap.Error(err))
		} else {
			s.logger.Info("App container shutdown gracefully")
		}
	})

	return s, nil
}

// attachHTTPServer 启动 HTTP 服务，并在收到关闭信号时优雅停止
func (s *Server) attachHTTPServer(name string, srv *http.Server) {
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		errChan := make(chan error, 1)
		go func() {
			errChan <- srv.ListenAndServe()
		}()
		select {
		case err := <-errChan:
			s.logger.Error(name+" err", zap.Error(err))
			s.sc.SendCloseSignal(err)
		case <-closeSignal:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// 停止HTTP服务器
			if err := srv.Shutdown(ctx); err != nil {
				s.logger.Error(name+" shutdown error", zap.Error(err))
			}
		}
	})
}

// initLoggerWithConfig 初始化日志器（使用注入的配置）
func initLoggerWithConfig(s *Server, cfg *internalApp.AppConfig) error {
	if dir := filepath.Dir(cfg.Log.File); cfg.Log.File != "" && dir != "" {
		if err := os.MkdirAll(dir, 0754); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	lg, err := logger.NewLogger(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		Production: cfg.Log.Production,
	})
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	s.logger = lg

	return nil
}

// GetApp 获取 App Container
func (s *Server) GetApp() *internalApp.App {
	return s.app
}

// GetConfig 获取应用配置
func (s *Server) GetConfig() *internalApp.AppConfig {
	return s.config
}
