package handlers

import (
	"github.com/gin-gonic/gin"

	"connecta_backend/internal/models"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/services"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

// AdminHandler groups the admin-only surface: user moderation, platform
// settings and broadcast email.
type AdminHandler struct {
	BaseHandler
	users    services.UserService
	settings services.SettingsService
}

func NewAdminHandler(base BaseHandler, users services.UserService, settings services.SettingsService) *AdminHandler {
	return &AdminHandler{BaseHandler: base, users: users, settings: settings}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/users", h.ListUsers)
	r.POST("/users/:id/activate", h.Activate)
	r.POST("/users/:id/deactivate", h.Deactivate)
	r.GET("/settings", h.GetSettings)
	r.PUT("/settings", h.UpdateSettings)
	r.POST("/broadcast", h.Broadcast)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := h.Pagination(c)

	filter := repositories.UserFilter{
		UserType: models.UserType(c.Query("userType")),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("isActive"); raw == "true" || raw == "false" {
		active := raw == "true"
		filter.IsActive = &active
	}

	result, err := h.users.ListUsers(filter)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *AdminHandler) Activate(c *gin.Context) {
	if err := h.users.SetActive(c.Param("id"), true); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "User activated")
}

func (h *AdminHandler) Deactivate(c *gin.Context) {
	if err := h.users.SetActive(c.Param("id"), false); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "User deactivated")
}

func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.Get()
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, settings)
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	settings, err := h.settings.Update(&req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, settings)
}

func (h *AdminHandler) Broadcast(c *gin.Context) {
	var req dto.BroadcastRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	sent, err := h.settings.Broadcast(&req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"sent": sent})
}
