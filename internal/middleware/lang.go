package middleware

import (
	"github.com/haierkeys/note-resource-service/pkg/app"
	"github.com/haierkeys/note-resource-service/pkg/code"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// LangWithTranslator 创建带翻译器的语言中间件（支持依赖注入）
// 语言只保存在当前请求的上下文中
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string

		if s, exist := c.GetQuery("lang"); exist {
			lang = s
		} else if s = c.GetHeader("lang"); len(s) != 0 {
			lang = s
		}

		lang = code.NormalizeLang(lang)
		if !code.IsSupportedLang(lang) {
			lang = code.FALLBACK_LNG
		}
		c.Set(app.LangKey, lang)

		if uni != nil {
			// universal-translator 使用 "zh" 作为中文的 locale
			locale := lang
			if locale == "zh_cn" {
				locale = "zh"
			}
			trans, found := uni.GetTranslator(locale)
			if !found {
				trans, _ = uni.GetTranslator("en")
			}
			c.Set(app.TransKey, trans)
		}

		c.Next()
	}
}
