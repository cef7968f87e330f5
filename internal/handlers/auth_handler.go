package handlers

import (
	"github.com/gin-gonic/gin"

	"connecta_backend/internal/middleware"
	"connecta_backend/internal/services"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type AuthHandler struct {
	BaseHandler
	auth services.AuthService
}

func NewAuthHandler(base BaseHandler, auth services.AuthService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, auth: auth}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/refresh", h.Refresh)
	r.POST("/logout", h.Logout)
	r.POST("/verify-email", h.VerifyEmail)
	r.POST("/resend-verification", h.ResendVerification)
	r.POST("/change-password", middleware.AuthMiddleware(), h.ChangePassword)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.auth.Register(&req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.auth.Login(&req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.auth.RefreshToken(req.RefreshToken)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.auth.Logout(req.RefreshToken); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Logged out")
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.auth.VerifyEmail(&req); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Email verified")
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.auth.ResendVerification(req.Email); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Verification code sent")
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.auth.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Password changed")
}
