package dto

import (
	"time"

	"connecta_backend/internal/models"
)

type CreateReviewRequest struct {
	RevieweeID string  `json:"revieweeId" validate:"required,uuid"`
	ProjectID  *string `json:"projectId" validate:"omitempty,uuid"`
	Rating     int     `json:"rating" validate:"required,min=1,max=5"`
	Comment    string  `json:"comment" validate:"omitempty,max=4000"`
}

type ReviewResponse struct {
	ID           string          `json:"id"`
	ReviewerID   string          `json:"reviewerId"`
	ReviewerName string          `json:"reviewerName,omitempty"`
	RevieweeID   string          `json:"revieweeId"`
	ProjectID    *string         `json:"projectId,omitempty"`
	ReviewerType models.UserType `json:"reviewerType"`
	Rating       int             `json:"rating"`
	Comment      string          `json:"comment"`
	CreatedAt    time.Time       `json:"createdAt"`
}
