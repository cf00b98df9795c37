// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/haierkeys/note-resource-service/internal/domain"
	"github.com/haierkeys/note-resource-service/internal/service"
	pkgapp "github.com/haierkeys/note-resource-service/pkg/app"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger

	// 指标注册表，每个容器独立，配置热重载时不会重复注册
	registry *prometheus.Registry

	// Repository 层，由进程持有，容器只使用不关闭
	NoteRepo domain.NoteRepository

	// Service 层
	NoteService service.NoteService

	shutdownOnce sync.Once
}

// NewApp 创建应用容器实例
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// noteRepo: 笔记仓储（必须），生命周期由调用方管理
func NewApp(cfg *AppConfig, logger *zap.Logger, noteRepo domain.NoteRepository) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if noteRepo == nil {
		return nil, fmt.Errorf("note repository is required")
	}

	a := &App{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		NoteRepo: noteRepo,
	}

	a.NoteService = service.NewNoteService(noteRepo, logger)

	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "notes_total",
			Help: "Number of notes currently held in memory.",
		}, func() float64 {
			return float64(noteRepo.Count(context.Background()))
		}),
	)

	logger.Info("App container initialized successfully",
		zap.String("deleteMode", cfg.Notes.DeleteMode),
		zap.Bool("unknownEndpoint", cfg.Server.UnknownEndpointEnabled()))

	return a, nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Registry 获取指标注册表
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 笔记仓储属于进程，热重载后仍然继续使用，这里不关闭
func (a *App) Shutdown(ctx context.Context) error {
	a.shutdownOnce.Do(func() {
		a.logger.Info("App container shutting down...",
			zap.Int("notes", a.NoteRepo.Count(ctx)))
		_ = a.logger.Sync()
	})
	return nil
}
