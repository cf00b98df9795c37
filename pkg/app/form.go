package app

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
)

type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString 将所有错误拼接为一个字符串
func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ", ")
}

// MapsToString 以字段名为键返回错误信息
func (v ValidErrors) MapsToString() map[string]string {
	out := make(map[string]string, len(v))
	for _, err := range v {
		out[err.Key] = err.Message
	}
	return out
}

// BindAndValid binds the decoded JSON body into v and validates it with gin's binding validator.
// Validation messages are translated with the translator chosen by the language middleware.
// BindAndValid 将解码后的 JSON 请求体绑定到 v 并校验，校验信息按请求语言翻译
func BindAndValid(c *gin.Context, v any) (bool, ValidErrors) {
	var errs ValidErrors

	err := binding.JSON.BindBody(GetRawBody(c), v)
	if err == nil {
		return true, nil
	}

	var verrs validatorV10.ValidationErrors
	if errors.As(err, &verrs) {
		var trans ut.Translator
		if v, ok := c.Get(TransKey); ok {
			trans, _ = v.(ut.Translator)
		}
		for _, fe := range verrs {
			msg := fe.Error()
			if trans != nil {
				msg = fe.Translate(trans)
			}
			errs = append(errs, &ValidError{Key: fe.Field(), Message: msg})
		}
		return false, errs
	}

	// 字段类型不匹配等解码错误
	key := "body"
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		key = typeErr.Field
	}
	errs = append(errs, &ValidError{Key: key, Message: err.Error()})
	return false, errs
}
