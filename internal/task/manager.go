package task

import (
	"time"

	"github.com/haierkeys/note-resource-service/internal/app"
	"github.com/haierkeys/note-resource-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager 任务管理器,负责创建和管理所有任务
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
	app       *app.App
}

// NewManager 创建任务管理器
func NewManager(logger *zap.Logger, sc *safe_close.SafeClose, a *app.App) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		logger:    logger,
		app:       a,
	}
}

// RegisterTasks 注册所有任务
func (m *Manager) RegisterTasks() {
	interval := time.Duration(m.app.Config().Notes.StatsInterval) * time.Second
	if statsTask := NewNoteStatsTask(m.app.NoteRepo, m.logger, interval); statsTask != nil {
		m.scheduler.AddTask(statsTask)
	} else {
		m.logger.Info("note stats task is disabled (notes.stats-interval not configured)")
	}
}

// Start 启动所有已注册的任务
func (m *Manager) Start() {
	m.scheduler.Start()
}
