package code

import (
	"fmt"
	"net/http"
)

type Code struct {
	// 业务码
	code int
	// HTTP 状态码
	statusCode int
	// 错误消息
	Lang lang
	// 错误详细信息，只用于日志，不输出到响应体
	details []string
}

var codes = map[int]string{}

// NewError registers a new error code bound to an HTTP status.
// NewError 注册一个绑定 HTTP 状态码的错误码
func NewError(code int, statusCode int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage(FALLBACK_LNG)

	return &Code{code: code, statusCode: statusCode, Lang: l}
}

// Clone 创建一个新的 Code 副本
func (e *Code) Clone() *Code {
	return &Code{
		code:       e.code,
		statusCode: e.statusCode,
		Lang:       e.Lang,
		details:    append([]string(nil), e.details...),
	}
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

// Msg returns the message in the fallback language.
func (e *Code) Msg() string {
	return e.Lang.GetMessage(FALLBACK_LNG)
}

// MsgIn returns the message in the given language, falling back to English.
// MsgIn 返回指定语言的消息，不支持时回退到英文
func (e *Code) MsgIn(language string) string {
	return e.Lang.GetMessage(language)
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) HaveDetails() bool {
	return len(e.details) > 0
}

// WithDetails returns a copy carrying details, the registered code is never mutated.
// WithDetails 返回携带详情的副本，不修改已注册的全局错误码
func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.details = append(c.details, details...)
	return c
}

// Is 让 errors.Is 可以比较同一错误码的副本
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	return ok && t.code == e.code
}

func (e *Code) StatusCode() int {
	if e.statusCode == 0 {
		return http.StatusOK
	}
	return e.statusCode
}
