package code

import (
	"reflect"
	"strings"
)

// lang type, used to store English and Chinese text
// lang 类型，用来存储英文和中文文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
}

const FALLBACK_LNG = "en"

// GetMessage method returns the corresponding message according to the passed language
// GetMessage 方法根据传入的语言返回相应的消息
func (l lang) GetMessage(language string) string {
	val := reflect.ValueOf(l)
	if language != "" {
		field := val.FieldByName(NormalizeLang(language))
		if field.IsValid() && field.String() != "" {
			return field.String()
		}
	}
	// 指定语言无效时返回回退语言的消息
	return l.en
}

// GetSupportedLanguages function returns all languages supported by the lang type
// GetSupportedLanguages 函数返回 lang 类型支持的所有语言
func GetSupportedLanguages() []string {
	var languages []string
	typ := reflect.TypeOf(lang{})
	for i := 0; i < typ.NumField(); i++ {
		languages = append(languages, typ.Field(i).Name)
	}
	return languages
}

// NormalizeLang maps request values such as "zh-CN" or "zh" onto a lang field name.
// NormalizeLang 将 "zh-CN"、"zh" 等请求值映射为 lang 字段名
func NormalizeLang(language string) string {
	language = strings.ToLower(strings.ReplaceAll(language, "-", "_"))
	if language == "zh" {
		return "zh_cn"
	}
	return language
}

// IsSupportedLang 判断语言是否受支持
func IsSupportedLang(language string) bool {
	language = NormalizeLang(language)
	for _, l := range GetSupportedLanguages() {
		if l == language {
			return true
		}
	}
	return false
}
