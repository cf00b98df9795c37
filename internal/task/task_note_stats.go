package task

import (
	"context"
	"time"

	"github.com/haierkeys/note-resource-service/internal/domain"

	"go.uber.org/zap"
)

// NoteStatsTask 定时输出笔记数量与重要笔记数量
type NoteStatsTask struct {
	repo     domain.NoteRepository
	logger   *zap.Logger
	interval time.Duration
}

// NewNoteStatsTask 创建笔记统计任务，interval <= 0 时返回 nil
func NewNoteStatsTask(repo domain.NoteRepository, logger *zap.Logger, interval time.Duration) *NoteStatsTask {
	if interval <= 0 {
		return nil
	}
	return &NoteStatsTask{repo: repo, logger: logger, interval: interval}
}

func (t *NoteStatsTask) Name() string { return "NoteStats" }

func (t *NoteStatsTask) LoopInterval() time.Duration { return t.interval }

func (t *NoteStatsTask) IsStartupRun() bool { return false }

func (t *NoteStatsTask) Run(ctx context.Context) error {
	notes, err := t.repo.List(ctx)
	if err != nil {
		return err
	}

	important := 0
	for _, n := range notes {
		if n.Important {
			important++
		}
	}

	t.logger.Info("note stats", zap.Int("total", len(notes)), zap.Int("important", important))
	return nil
}
