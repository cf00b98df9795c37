// Package domain 定义领域模型和接口
package domain

import "context"

// NoteRepository 笔记仓储接口
// 实现方独占笔记集合，返回的笔记均为副本
type NoteRepository interface {
	// List 获取全部笔记
	List(ctx context.Context) ([]*Note, error)

	// GetByID 根据ID获取笔记，不存在时返回 ErrNoteNotFound
	GetByID(ctx context.Context, id int64) (*Note, error)

	// Create 分配新 ID 并创建笔记
	Create(ctx context.Context, content string, important bool) (*Note, error)

	// DeleteByID 删除指定ID的笔记，不存在时不报错，removed 为 false
	DeleteByID(ctx context.Context, id int64) (removed bool, err error)

	// ToggleImportant 翻转笔记的 important 标记，不存在时返回 ErrNoteNotFound
	ToggleImportant(ctx context.Context, id int64) (*Note, error)

	// Count 获取笔记数量
	Count(ctx context.Context) int
}
