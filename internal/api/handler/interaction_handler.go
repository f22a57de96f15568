package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"recruitpath/backend/internal/dto"
	"recruitpath/backend/internal/service"
	"recruitpath/backend/pkg/response"
)

// InteractionHandler 教练互动模块 HTTP 处理器
type InteractionHandler struct {
	interactionSvc service.InteractionService
}

// NewInteractionHandler 创建 InteractionHandler
func NewInteractionHandler(interactionSvc service.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionSvc: interactionSvc}
}

// CreateInteraction 记录一次教练互动
// POST /api/v1/interactions
func (h *InteractionHandler) CreateInteraction(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	interaction, err := h.interactionSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleInteractionError(c, err)
		return
	}

	response.Created(c, interaction)
}

// UpdateInteraction 更新互动记录
// PUT /api/v1/interactions/:id
func (h *InteractionHandler) UpdateInteraction(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "互动ID不能为空")
		return
	}

	var req dto.UpdateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	interaction, err := h.interactionSvc.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		h.handleInteractionError(c, err)
		return
	}

	response.OK(c, interaction)
}

// DeleteInteraction 删除互动记录
// DELETE /api/v1/interactions/:id
func (h *InteractionHandler) DeleteInteraction(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "互动ID不能为空")
		return
	}

	if err := h.interactionSvc.Delete(c.Request.Context(), userID, id); err != nil {
		h.handleInteractionError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListInteractions 互动列表
// GET /api/v1/interactions
func (h *InteractionHandler) ListInteractions(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.InteractionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	interactions, total, err := h.interactionSvc.List(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleInteractionError(c, err)
		return
	}

	response.OKPage(c, interactions, total, req.GetPage(), req.GetPageSize())
}

// handleInteractionError 统一处理互动模块业务错误
func (h *InteractionHandler) handleInteractionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInteractionNotFound):
		response.NotFound(c, 15001, "互动记录不存在")
	case errors.Is(err, service.ErrInvalidOccurredAt):
		response.BadRequest(c, 15002, "occurred_at 时间格式无效")
	case errors.Is(err, service.ErrSchoolNotFound):
		response.NotFound(c, 14001, "目标学校不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/interaction_handler.go
