package handlers

import (
	"github.com/gin-gonic/gin"

	"connecta_backend/internal/services"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type UserHandler struct {
	BaseHandler
	users      services.UserService
	reputation services.ReputationService
	reviews    services.ReviewService
}

func NewUserHandler(base BaseHandler, users services.UserService, reputation services.ReputationService, reviews services.ReviewService) *UserHandler {
	return &UserHandler{BaseHandler: base, users: users, reputation: reputation, reviews: reviews}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/me", h.Me)
	r.PUT("/me", h.UpdateMe)
	r.DELETE("/me", h.DeactivateMe)
	r.POST("/me/push-token", h.RegisterPushToken)
	r.DELETE("/me/push-token", h.UnregisterPushToken)
	r.GET("/:id", h.GetUser)
	r.GET("/:id/reputation", h.GetReputation)
	r.GET("/:id/reviews", h.GetReviews)
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, user)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.users.Update(userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, user)
}

func (h *UserHandler) DeactivateMe(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	if err := h.users.Deactivate(userID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Account deactivated")
}

func (h *UserHandler) RegisterPushToken(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.PushTokenRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.users.RegisterPushToken(userID, req.Token); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Push token registered")
}

func (h *UserHandler) UnregisterPushToken(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.PushTokenRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.users.UnregisterPushToken(userID, req.Token); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Push token removed")
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, user)
}

func (h *UserHandler) GetReputation(c *gin.Context) {
	rep, err := h.reputation.GetReputation(c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, rep)
}

func (h *UserHandler) GetReviews(c *gin.Context) {
	page, pageSize := h.Pagination(c)
	reviews, err := h.reviews.ListForUser(c.Param("id"), page, pageSize)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, reviews)
}
