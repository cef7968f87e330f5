package dto

import (
	"time"

	"connecta_backend/internal/models"
)

type CreateCollaboRequest struct {
	Title       string                    `json:"title" validate:"required,min=5,max=200"`
	Description string                    `json:"description" validate:"required,min=20"`
	TotalBudget float64                   `json:"totalBudget" validate:"gte=0"`
	Roles       []CreateCollaboRoleInput  `json:"roles" validate:"required,min=1,max=20,dive"`
}

type CreateCollaboRoleInput struct {
	Title       string   `json:"title" validate:"required,min=2,max=120"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Budget      float64  `json:"budget" validate:"gte=0"`
	Skills      []string `json:"skills" validate:"omitempty,max=20,dive,min=1,max=50"`
}

type CollaboResponse struct {
	ID           string                 `json:"id"`
	OwnerID      string                 `json:"ownerId"`
	OwnerName    string                 `json:"ownerName,omitempty"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	TotalBudget  float64                `json:"totalBudget"`
	Status       models.CollaboStatus   `json:"status"`
	Roles        []CollaboRoleResponse  `json:"roles"`
	UnreadCount  int                    `json:"unreadCount"`
	CreatedAt    time.Time              `json:"createdAt"`
}

type CollaboRoleResponse struct {
	ID           string                   `json:"id"`
	Title        string                   `json:"title"`
	Description  string                   `json:"description"`
	Budget       float64                  `json:"budget"`
	Skills       []string                 `json:"skills"`
	Status       models.CollaboRoleStatus `json:"status"`
	AssigneeID   *string                  `json:"assigneeId,omitempty"`
	AssigneeName string                   `json:"assigneeName,omitempty"`
}

type InviteToRoleRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}
