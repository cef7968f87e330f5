package handlers

import (
	"github.com/gin-gonic/gin"

	"connecta_backend/internal/services"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type ReviewHandler struct {
	BaseHandler
	reviews services.ReviewService
}

func NewReviewHandler(base BaseHandler, reviews services.ReviewService) *ReviewHandler {
	return &ReviewHandler{BaseHandler: base, reviews: reviews}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.Create)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.reviews.Create(userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, review)
}
