package handlers

import (
	"github.com/gin-gonic/gin"

	"connecta_backend/internal/models"
	"connecta_backend/internal/services"
	"connecta_backend/pkg/apperrors"
)

type DashboardHandler struct {
	BaseHandler
	dashboard services.DashboardService
}

func NewDashboardHandler(base BaseHandler, dashboard services.DashboardService) *DashboardHandler {
	return &DashboardHandler{BaseHandler: base, dashboard: dashboard}
}

func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.Get)
}

func (h *DashboardHandler) Get(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	userType := models.UserTypeFreelancer
	if raw, exists := c.Get("userType"); exists {
		switch v := raw.(type) {
		case models.UserType:
			userType = v
		case string:
			userType = models.UserType(v)
		}
	}

	result, err := h.dashboard.Get(c.Request.Context(), userID, userType)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, result)
}
