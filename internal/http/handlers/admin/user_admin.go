package admin

import (
	"strconv"
	"strings"

	"github.com/dwarmarket/internal/http/response"
	"github.com/dwarmarket/internal/repository"
	"github.com/dwarmarket/internal/service"

	"github.com/gin-gonic/gin"
)

// UserActiveRequest 用户启停请求
type UserActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// UserStaffRequest 员工身份授予请求
type UserStaffRequest struct {
	IsStaff *bool `json:"is_staff" binding:"required"`
}

// StaffRolesRequest 员工角色设置请求
type StaffRolesRequest struct {
	Roles []string `json:"roles" binding:"required"`
}

var userAdminErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.validation_failed"},
}

func respondUserAdminError(c *gin.Context, err error) {
	respondWithMappedError(c, err, userAdminErrorRules)
}

// ListUsers 用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
	}
	switch c.Query("staff") {
	case "true":
		staff := true
		filter.Staff = &staff
	case "false":
		staff := false
		filter.Staff = &staff
	}

	users, total, err := h.UserAdminService.List(filter)
	if err != nil {
		respondUserAdminError(c, err)
		return
	}
	response.SuccessWithPage(c, gin.H{"users": users}, buildPagination(page, pageSize, total))
}

// GetUser 用户详情
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.UserAdminService.Get(id)
	if err != nil {
		respondUserAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"user": user})
}

// SetUserActive 启用/停用用户
func (h *Handler) SetUserActive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UserActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAdminService.SetActive(id, *req.Active)
	if err != nil {
		respondUserAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"user": user})
}

// SetUserStaff 授予/收回员工身份
func (h *Handler) SetUserStaff(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UserStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsStaff == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAdminService.SetStaff(id, *req.IsStaff)
	if err != nil {
		respondUserAdminError(c, err)
		return
	}

	// 收回员工身份时同步清空其角色绑定
	if !*req.IsStaff {
		if err := h.AuthzService.SetStaffRoles(user.ID, nil); err != nil {
			requestLog(c).Warnw("staff_roles_clear_failed", "user_id", user.ID, "error", err)
		}
	}
	response.Success(c, gin.H{"user": user})
}

// GetStaffRoles 查询员工角色
func (h *Handler) GetStaffRoles(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.UserAdminService.Get(id)
	if err != nil {
		respondUserAdminError(c, err)
		return
	}

	roles, err := h.AuthzService.GetStaffRoles(user.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, gin.H{"user_id": user.ID, "roles": roles})
}

// SetStaffRoles 设置员工角色
func (h *Handler) SetStaffRoles(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req StaffRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAdminService.Get(id)
	if err != nil {
		respondUserAdminError(c, err)
		return
	}
	if !user.IsStaff {
		respondError(c, response.CodeBadRequest, "error.user_not_staff", nil)
		return
	}

	if err := h.AuthzService.SetStaffRoles(user.ID, req.Roles); err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	roles, err := h.AuthzService.GetStaffRoles(user.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, gin.H{"user_id": user.ID, "roles": roles})
}

// ListRoles 角色列表
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, gin.H{"roles": roles})
}
