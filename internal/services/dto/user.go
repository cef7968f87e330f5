package dto

import (
	"time"

	"connecta_backend/internal/models"
)

type UserResponse struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	FullName        string          `json:"fullName"`
	UserType        models.UserType `json:"userType"`
	IsVerified      bool            `json:"isVerified"`
	IsPremium       bool            `json:"isPremium"`
	AverageRating   float64         `json:"averageRating"`
	TotalReviews    int             `json:"totalReviews"`
	JobSuccessScore float64         `json:"jobSuccessScore"`
	Badges          []string        `json:"badges"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type UpdateUserRequest struct {
	FullName string `json:"fullName" validate:"omitempty,min=2,max=100"`
}

type PushTokenRequest struct {
	Token string `json:"token" validate:"required,max=512"`
}

type ReputationResponse struct {
	UserID          string   `json:"userId"`
	JobSuccessScore float64  `json:"jobSuccessScore"`
	AverageRating   float64  `json:"averageRating"`
	TotalReviews    int      `json:"totalReviews"`
	Badges          []string `json:"badges"`
	ClosedContracts int      `json:"closedContracts"`
}
