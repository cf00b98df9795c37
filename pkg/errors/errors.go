// Package errors 将业务错误统一转换为 HTTP 响应
package errors

import (
	"errors"
	"net/http"

	"github.com/haierkeys/note-resource-service/pkg/app"
	"github.com/haierkeys/note-resource-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AsCode 从错误链中获取 *code.Code，不是业务错误时返回服务器内部错误
func AsCode(err error) *code.Code {
	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		return codeErr
	}
	return code.ErrorServerInternal
}

// StatusOf returns the HTTP status an error maps to.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return AsCode(err).StatusCode()
}

// ErrorResponse renders err as {"error": message} with the status of its code.
// Errors that are not *code.Code become 500 without leaking their text.
// ErrorResponse 统一错误响应处理
func ErrorResponse(c *gin.Context, err error) {
	app.NewResponse(c).ToResponse(AsCode(err))
}

// IsCode 检查错误链中是否包含指定错误码
func IsCode(err error, target *code.Code) bool {
	return errors.Is(err, target)
}
