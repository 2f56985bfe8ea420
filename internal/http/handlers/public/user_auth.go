package public

import (
	"errors"

	"github.com/dwarmarket/internal/http/response"
	"github.com/dwarmarket/internal/models"
	"github.com/dwarmarket/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 用户注册请求
type RegisterRequest struct {
	Phone           string `json:"phone" binding:"required"`
	FullName        string `json:"full_name" binding:"required"`
	Email           string `json:"email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Address         string `json:"address"`
	NearMark        string `json:"near_mark"`
}

// LoginRequest 用户登录请求
type LoginRequest struct {
	Phone      string `json:"phone" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// UpdateProfileRequest 资料更新请求
type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	NearMark string `json:"near_mark"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func authPayload(user *models.User, token string, expiresAt int64) gin.H {
	return gin.H{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt,
	}
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(service.RegisterInput{
		Phone:           req.Phone,
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Address:         req.Address,
		NearMark:        req.NearMark,
	})
	if err != nil {
		if respondPasswordError(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrPhoneExists):
			respondError(c, response.CodeConflict, "error.phone_exists", nil)
		case errors.Is(err, service.ErrPasswordMismatch):
			respondError(c, response.CodeBadRequest, "error.password_mismatch", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "error.validation_failed", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal_error", err)
		}
		return
	}
	response.Success(c, authPayload(user, token, expiresAt.Unix()))
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Phone, req.Password, req.RememberMe)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
		case errors.Is(err, service.ErrUserDisabled):
			respondError(c, response.CodeForbidden, "error.user_disabled", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal_error", err)
		}
		return
	}
	response.Success(c, authPayload(user, token, expiresAt.Unix()))
}

// GetProfile 获取当前用户资料
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetProfile(uid)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, gin.H{"user": user})
}

// UpdateProfile 更新当前用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(uid, service.UpdateProfileInput{
		FullName: req.FullName,
		Email:    req.Email,
		Address:  req.Address,
		NearMark: req.NearMark,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, gin.H{"user": user})
}

// ChangePassword 修改当前用户密码
func (h *Handler) ChangePassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.UserAuthService.ChangePassword(uid, req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		if respondPasswordError(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeBadRequest, "error.invalid_credentials", nil)
		case errors.Is(err, service.ErrPasswordMismatch):
			respondError(c, response.CodeBadRequest, "error.password_mismatch", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal_error", err)
		}
		return
	}
	response.Success(c, gin.H{"updated": true})
}
