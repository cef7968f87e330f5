package handlers

import (
	"github.com/gin-gonic/gin"

	"connecta_backend/internal/services"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type MessageHandler struct {
	BaseHandler
	messages services.MessageService
}

func NewMessageHandler(base BaseHandler, messages services.MessageService) *MessageHandler {
	return &MessageHandler{BaseHandler: base, messages: messages}
}

func (h *MessageHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.List)
	r.POST("", h.Start)
	r.GET("/unread", h.UnreadTotal)
	r.GET("/with/:userId", h.MessagesBetween)
	r.POST("/messages", h.SendDirect)
	r.DELETE("/messages/:id", h.DeleteMessage)
	r.GET("/:id/messages", h.Messages)
	r.POST("/:id/messages", h.Send)
	r.POST("/:id/read", h.MarkRead)
}

func (h *MessageHandler) List(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	page, pageSize := h.Pagination(c)
	result, err := h.messages.ListConversations(userID, page, pageSize)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *MessageHandler) Start(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.StartConversationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	conversation, err := h.messages.StartConversation(userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, conversation)
}

func (h *MessageHandler) UnreadTotal(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	total, err := h.messages.UnreadTotal(userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"unread": total})
}

func (h *MessageHandler) Messages(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	page, pageSize := h.Pagination(c)
	result, err := h.messages.GetMessages(userID, c.Param("id"), page, pageSize)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	message, err := h.messages.SendMessage(userID, c.Param("id"), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, message)
}

// SendDirect accepts a receiver instead of a conversation id, the pair's
// conversation is found or created on the way.
func (h *MessageHandler) SendDirect(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	message, err := h.messages.SendMessage(userID, "", &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, message)
}

func (h *MessageHandler) MessagesBetween(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	page, pageSize := h.Pagination(c)
	result, err := h.messages.GetMessagesBetweenUsers(userID, c.Param("userId"), page, pageSize)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	if err := h.messages.DeleteMessage(userID, c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Message deleted")
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	if err := h.messages.MarkRead(userID, c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Conversation marked read")
}
