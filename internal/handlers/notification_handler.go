package handlers

import (
	"github.com/gin-gonic/gin"

	"connecta_backend/internal/services"
	"connecta_backend/pkg/apperrors"
)

type NotificationHandler struct {
	BaseHandler
	notifications services.NotificationService
}

func NewNotificationHandler(base BaseHandler, notifications services.NotificationService) *NotificationHandler {
	return &NotificationHandler{BaseHandler: base, notifications: notifications}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.List)
	r.GET("/unread", h.UnreadCount)
	r.POST("/read-all", h.MarkAllRead)
	r.POST("/:id/read", h.MarkRead)
	r.DELETE("/:id", h.Delete)
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	page, pageSize := h.Pagination(c)
	result, err := h.notifications.List(userID, page, pageSize)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	count, err := h.notifications.UnreadCount(userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"unread": count})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	count, err := h.notifications.MarkAllRead(userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"marked": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(c.Param("id"), userID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Notification marked read")
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	if err := h.notifications.Delete(c.Param("id"), userID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Notification deleted")
}
