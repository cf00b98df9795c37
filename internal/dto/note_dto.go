// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"encoding/json"

	"github.com/haierkeys/note-resource-service/pkg/convert"
)

// NoteDTO Note data transfer object
// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	Important bool   `json:"important"`
}

// NoteCreateRequest Request parameters for creating a note
// 用于创建笔记的请求参数
type NoteCreateRequest struct {
	Content   string `json:"content" binding:"required"`
	Important Flag   `json:"important"`
}

// Flag is a boolean decoded from any JSON value by truthiness:
// false, 0, "" and null are false, everything else is true.
// Flag 按真值语义从任意 JSON 值解码出的布尔值
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Flag(convert.Truthy(v))
	return nil
}

func (f Flag) Bool() bool {
	return bool(f)
}
