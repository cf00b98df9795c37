// Package dao 提供笔记集合的内存存储实现
package dao

import (
	"context"
	"sync"

	"github.com/haierkeys/note-resource-service/internal/domain"

	"go.uber.org/zap"
)

// NoteStore 内存笔记仓储，实现 domain.NoteRepository
// 所有读写都在同一把锁内完成，ID 分配（取最大值再追加）与翻转（查找再修改）不会被并发请求打断
type NoteStore struct {
	mu     sync.RWMutex
	notes  []*domain.Note
	logger *zap.Logger
}

var _ domain.NoteRepository = (*NoteStore)(nil)

// NoteStoreOption NoteStore 可选配置
type NoteStoreOption func(*NoteStore)

// WithSeed 使用给定笔记初始化集合，重复的 ID 只保留第一条
func WithSeed(seed []domain.Note) NoteStoreOption {
	return func(s *NoteStore) {
		seen := make(map[int64]struct{}, len(seed))
		for i := range seed {
			if _, ok := seen[seed[i].ID]; ok {
				continue
			}
			seen[seed[i].ID] = struct{}{}
			s.notes = append(s.notes, seed[i].Clone())
		}
	}
}

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) NoteStoreOption {
	return func(s *NoteStore) {
		s.logger = logger
	}
}

// DefaultSeed returns the three notes the service starts with.
// DefaultSeed 返回服务启动时的三条初始笔记
func DefaultSeed() []domain.Note {
	return []domain.Note{
		{ID: 1, Content: "HTML is easy", Important: true},
		{ID: 2, Content: "Browser can execute only JavaScript", Important: false},
		{ID: 3, Content: "GET and POST are the most important methods of HTTP protocol", Important: true},
	}
}

// NewNoteStore 创建内存笔记仓储
func NewNoteStore(opts ...NoteStoreOption) *NoteStore {
	s := &NoteStore{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List 获取全部笔记（插入顺序）
func (s *NoteStore) List(ctx context.Context) ([]*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Note, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, n.Clone())
	}
	return out, nil
}

// GetByID 根据ID获取笔记
func (s *NoteStore) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.notes[i].Clone(), nil
	}
	return nil, domain.ErrNoteNotFound
}

// Create 分配新 ID 并追加笔记
func (s *NoteStore) Create(ctx context.Context, content string, important bool) (*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := &domain.Note{
		ID:        s.nextID(),
		Content:   content,
		Important: important,
	}
	s.notes = append(s.notes, n)

	s.logger.Debug("note created", zap.Int64("noteId", n.ID), zap.Int("count", len(s.notes)))
	return n.Clone(), nil
}

// DeleteByID 删除指定ID的笔记
func (s *NoteStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.notes = append(s.notes[:i], s.notes[i+1:]...)

	s.logger.Debug("note deleted", zap.Int64("noteId", id), zap.Int("count", len(s.notes)))
	return true, nil
}

// ToggleImportant 翻转 important 标记
func (s *NoteStore) ToggleImportant(ctx context.Context, id int64) (*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNoteNotFound
	}
	s.notes[i].Important = !s.notes[i].Important
	return s.notes[i].Clone(), nil
}

// Count 获取笔记数量
func (s *NoteStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Close 释放集合，进程退出前调用
func (s *NoteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = nil
	return nil
}

// nextID is max(id)+1, or 1 for an empty collection. Caller holds mu.
func (s *NoteStore) nextID() int64 {
	if len(s.notes) == 0 {
		return 1
	}
	maxID := s.notes[0].ID
	for _, n := range s.notes[1:] {
		if n.ID > maxID {
			maxID = n.ID
		}
	}
	return maxID + 1
}

// indexOf caller holds mu
func (s *NoteStore) indexOf(id int64) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
