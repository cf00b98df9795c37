package api_router

import (
	"net/http"

	"github.com/haierkeys/note-resource-service/internal/app"
	"github.com/haierkeys/note-resource-service/internal/dto"
	pkgapp "github.com/haierkeys/note-resource-service/pkg/app"
	"github.com/haierkeys/note-resource-service/pkg/code"
	apperrors "github.com/haierkeys/note-resource-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NoteHandler 笔记 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{
		Handler: NewHandler(a),
	}
}

// List 获取全部笔记
// @Summary 获取笔记列表
// @Tags 笔记
// @Produce json
// @Success 200 {array} dto.NoteDTO "成功"
// @Router /api/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	notes, err := h.App.NoteService.List(ctx)
	if err != nil {
		h.logError(ctx, "NoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToData(notes)
}

// Get 获取单条笔记
// 找不到时返回 404 空响应体
// @Summary 获取笔记详情
// @Tags 笔记
// @Produce json
// @Param id path int true "笔记 ID"
// @Success 200 {object} dto.NoteDTO "成功"
// @Failure 404 "笔记不存在"
// @Router /api/notes/{id} [get]
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := pkgapp.GetNoteID(c)
	if !ok {
		response.ToEmpty(http.StatusNotFound)
		return
	}

	ctx := c.Request.Context()
	note, err := h.App.NoteService.Get(ctx, id)
	if err != nil {
		if apperrors.IsCode(err, code.ErrorNoteNotFound) {
			response.ToEmpty(http.StatusNotFound)
			return
		}
		h.logError(ctx, "NoteHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToData(note)
}

// Create 创建笔记
// 请求体在进入 handler 之前已由 BindJSON 校验
// @Summary 创建笔记
// @Tags 笔记
// @Accept json
// @Produce json
// @Param params body dto.NoteCreateRequest true "笔记内容"
// @Success 200 {object} dto.NoteDTO "成功"
// @Failure 400 {object} pkgapp.ErrorRes "content missing"
// @Router /api/notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params, ok := pkgapp.GetParams[dto.NoteCreateRequest](c)
	if !ok {
		response.ToResponse(code.ErrorContentMissing)
		return
	}

	ctx := c.Request.Context()
	note, err := h.App.NoteService.Create(ctx, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToData(note)
}

// ToggleImportant 翻转笔记的 important 标记，不需要请求体
// @Summary 切换重要标记
// @Tags 笔记
// @Produce json
// @Param id path int true "笔记 ID"
// @Success 200 {object} dto.NoteDTO "成功"
// @Failure 404 {object} pkgapp.ErrorRes "Note not found"
// @Router /api/notes/{id} [put]
func (h *NoteHandler) ToggleImportant(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := pkgapp.GetNoteID(c)
	if !ok {
		response.ToResponse(code.ErrorNoteNotFound)
		return
	}

	ctx := c.Request.Context()
	note, err := h.App.NoteService.ToggleImportant(ctx, id)
	if err != nil {
		if !apperrors.IsCode(err, code.ErrorNoteNotFound) {
			h.logError(ctx, "NoteHandler.ToggleImportant", err)
		}
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToData(note)
}

// Delete 删除笔记，总是返回 204
// legacy 模式下不触碰存储
// @Summary 删除笔记
// @Tags 笔记
// @Param id path int true "笔记 ID"
// @Success 204 "无内容"
// @Router /api/notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	defer response.ToEmpty(http.StatusNoContent)

	if h.App.Config().Notes.LegacyDelete() {
		return
	}

	id, ok := pkgapp.GetNoteID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.App.NoteService.Delete(ctx, id); err != nil {
		h.logError(ctx, "NoteHandler.Delete", err)
	}
}
