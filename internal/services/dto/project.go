package dto

import (
	"encoding/json"
	"time"

	"connecta_backend/internal/models"
)

type ProjectResponse struct {
	ID             string               `json:"id"`
	JobID          string               `json:"jobId,omitempty"`
	ClientID       string               `json:"clientId"`
	ClientName     string               `json:"clientName,omitempty"`
	FreelancerID   string               `json:"freelancerId"`
	FreelancerName string               `json:"freelancerName,omitempty"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Budget         float64              `json:"budget"`
	Status         models.ProjectStatus `json:"status"`
	Milestones     json.RawMessage      `json:"milestones,omitempty"`
	CompletedAt    *time.Time           `json:"completedAt,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
}

type UpdateProjectRequest struct {
	Title       string               `json:"title" validate:"omitempty,min=5,max=200"`
	Description string               `json:"description" validate:"omitempty"`
	Status      models.ProjectStatus `json:"status" validate:"omitempty,is-project-status"`
	Milestones  json.RawMessage      `json:"milestones"`
}
