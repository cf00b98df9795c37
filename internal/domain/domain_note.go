// Package domain 定义领域模型和接口
package domain

import "errors"

// ErrNoteNotFound 笔记不存在
var ErrNoteNotFound = errors.New("note not found")

// Note 笔记领域模型
type Note struct {
	ID        int64
	Content   string
	Important bool
}

// Clone returns a copy that shares nothing with the receiver.
func (n *Note) Clone() *Note {
	c := *n
	return &c
}
