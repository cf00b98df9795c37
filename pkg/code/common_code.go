package code

import "net/http"

var (
	ErrorServerInternal  = NewError(500, http.StatusInternalServerError, lang{en: "internal server error", zh_cn: "服务器内部错误"})
	ErrorNotFoundAPI     = NewError(404, http.StatusNotFound, lang{en: "unknown endpoint", zh_cn: "未知的接口"})
	ErrorTooManyRequests = NewError(429, http.StatusTooManyRequests, lang{en: "too many requests", zh_cn: "请求过于频繁"})

	ErrorContentMissing = NewError(400101, http.StatusBadRequest, lang{en: "content missing", zh_cn: "缺少笔记内容"})
	ErrorNoteNotFound   = NewError(404101, http.StatusNotFound, lang{en: "Note not found", zh_cn: "笔记不存在"})
)
