package app

import (
	"github.com/gin-gonic/gin"
)

// gin.Context 中使用的键
const (
	StatusCodeKey = "status_code"
	LangKey       = "lang"
	TransKey      = "trans"
	RawBodyKey    = "raw_body"
	BodyKey       = "decoded_body"
	NoteIDKey     = "note_id"
	ParamsKey     = "params"
)

// GetLang returns the language chosen for this request, empty when none was set.
func GetLang(c *gin.Context) string {
	return c.GetString(LangKey)
}

// GetRawBody returns the JSON object text kept by the body decoding step, "{}" when there is none.
// GetRawBody 返回请求体解码步骤保存的 JSON 对象原文，没有时返回 "{}"
func GetRawBody(c *gin.Context) []byte {
	if v, ok := c.Get(RawBodyKey); ok {
		if raw, ok := v.([]byte); ok && len(raw) > 0 {
			return raw
		}
	}
	return []byte("{}")
}

// GetBody 返回解码后的请求体，未解码时为空对象
func GetBody(c *gin.Context) map[string]any {
	if v, ok := c.Get(BodyKey); ok {
		if body, ok := v.(map[string]any); ok {
			return body
		}
	}
	return map[string]any{}
}

// GetNoteID returns the numeric note id parsed from the route; ok is false when the
// parameter is absent or not a number.
// GetNoteID 获取路由中解析出的笔记 ID，参数缺失或不是数字时 ok 为 false
func GetNoteID(c *gin.Context) (id int64, ok bool) {
	v, exist := c.Get(NoteIDKey)
	if !exist {
		return 0, false
	}
	id, ok = v.(int64)
	return id, ok
}

// GetParams returns the request schema bound and validated before the handler ran.
// GetParams 获取在 handler 之前已绑定并校验的请求参数
func GetParams[T any](c *gin.Context) (*T, bool) {
	v, exist := c.Get(ParamsKey)
	if !exist {
		return nil, false
	}
	params, ok := v.(*T)
	return params, ok
}
