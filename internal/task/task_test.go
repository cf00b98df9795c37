package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/haierkeys/note-resource-service/internal/dao"
	"github.com/haierkeys/note-resource-service/pkg/safe_close"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type countingTask struct {
	runs    atomic.Int32
	startup bool
	fail    bool
	panics  bool
}

func (t *countingTask) Name() string                { return "counting" }
func (t *countingTask) LoopInterval() time.Duration { return 10 * time.Millisecond }
func (t *countingTask) IsStartupRun() bool          { return t.startup }
func (t *countingTask) Run(ctx context.Context) error {
	t.runs.Add(1)
	if t.panics {
		panic("task boom")
	}
	if t.fail {
		return errors.New("task failed")
	}
	return nil
}

func TestSchedulerRunsUntilClosed(t *testing.T) {
	tests := []struct {
		name string
		task *countingTask
	}{
		{name: "ok", task: &countingTask{startup: true}},
		{name: "error", task: &countingTask{fail: true}},
		{name: "panic", task: &countingTask{panics: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := safe_close.NewSafeClose()
			s := NewScheduler(zap.NewNop(), sc)
			s.AddTask(tt.task)
			s.Start()

			assert.Eventually(t, func() bool { return tt.task.runs.Load() >= 2 }, time.Second, 5*time.Millisecond)

			sc.SendCloseSignal(nil)
			require.NoError(t, sc.WaitClosed())

			stopped := tt.task.runs.Load()
			time.Sleep(30 * time.Millisecond)
			assert.Equal(t, stopped, tt.task.runs.Load(), "no runs after close")
		})
	}
}

func TestNoteStatsTask(t *testing.T) {
	assert.Nil(t, NewNoteStatsTask(dao.NewNoteStore(), zap.NewNop(), 0))

	core, logs := observer.New(zap.InfoLevel)
	store := dao.NewNoteStore(dao.WithSeed(dao.DefaultSeed()))
	task := NewNoteStatsTask(store, zap.New(core), time.Minute)
	require.NotNil(t, task)
	assert.Equal(t, time.Minute, task.LoopInterval())

	require.NoError(t, task.Run(context.Background()))

	entries := logs.FilterMessage("note stats").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(3), fields["total"])
	assert.Equal(t, int64(2), fields["important"])
}
