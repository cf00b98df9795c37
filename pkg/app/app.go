package app

import (
	"net/http"

	"github.com/haierkeys/note-resource-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// VersionInfo version information // 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

type Response struct {
	Ctx *gin.Context
}

// ErrorRes is the body of every failed JSON response.
// ErrorRes 所有失败 JSON 响应的响应体
type ErrorRes struct {
	Error string `json:"error"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetAccessHost 获取访问地址（协议 + Host）
func GetAccessHost(c *gin.Context) string {
	accessProto := "http://"
	if proto := c.Request.Header.Get("X-Forwarded-Proto"); proto != "" {
		accessProto = proto + "://"
	}
	return accessProto + c.Request.Host
}

// ToResponse writes the code's status with an {"error": message} body in the request language.
// ToResponse 输出错误码对应的状态与 {"error": 消息} 响应体
func (r *Response) ToResponse(codeObj *code.Code) {
	r.Ctx.Set(StatusCodeKey, codeObj.StatusCode())
	r.send(codeObj.StatusCode(), ErrorRes{Error: codeObj.MsgIn(GetLang(r.Ctx))})
}

// ToData 输出 200 与 JSON 数据
func (r *Response) ToData(data any) {
	r.Ctx.Set(StatusCodeKey, http.StatusOK)
	r.send(http.StatusOK, data)
}

// ToEmpty writes only a status line, no body.
// ToEmpty 只输出状态码，不输出响应体
func (r *Response) ToEmpty(statusCode int) {
	r.Ctx.Set(StatusCodeKey, statusCode)
	r.Ctx.Status(statusCode)
}

func (r *Response) send(statusCode int, content any) {
	r.Ctx.JSON(statusCode, content)
}
