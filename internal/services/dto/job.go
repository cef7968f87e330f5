package dto

import (
	"time"

	"connecta_backend/internal/models"
)

type CreateJobRequest struct {
	Title       string   `json:"title" validate:"required,min=5,max=200"`
	Description string   `json:"description" validate:"required,min=20"`
	Category    string   `json:"category" validate:"required,max=100"`
	Skills      []string `json:"skills" validate:"omitempty,max=20,dive,min=1,max=50"`
	BudgetMin   float64  `json:"budgetMin" validate:"gte=0"`
	BudgetMax   float64  `json:"budgetMax" validate:"gtefield=BudgetMin"`
	Duration    string   `json:"duration" validate:"omitempty,max=100"`
	Draft       bool     `json:"draft"`
}

type UpdateJobRequest struct {
	Title       string           `json:"title" validate:"omitempty,min=5,max=200"`
	Description string           `json:"description" validate:"omitempty,min=20"`
	Category    string           `json:"category" validate:"omitempty,max=100"`
	Skills      []string         `json:"skills" validate:"omitempty,max=20,dive,min=1,max=50"`
	BudgetMin   *float64         `json:"budgetMin" validate:"omitempty,gte=0"`
	BudgetMax   *float64         `json:"budgetMax" validate:"omitempty,gte=0"`
	Duration    string           `json:"duration" validate:"omitempty,max=100"`
	Status      models.JobStatus `json:"status" validate:"omitempty,is-job-status"`
}

type JobResponse struct {
	ID            string           `json:"id"`
	ClientID      string           `json:"clientId"`
	ClientName    string           `json:"clientName,omitempty"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	Skills        []string         `json:"skills"`
	BudgetMin     float64          `json:"budgetMin"`
	BudgetMax     float64          `json:"budgetMax"`
	Duration      string           `json:"duration"`
	Status        models.JobStatus `json:"status"`
	Views         int              `json:"views"`
	ProposalCount int64            `json:"proposalCount"`
	IsExternal    bool             `json:"isExternal"`
	Source        string           `json:"source,omitempty"`
	Company       string           `json:"company,omitempty"`
	ApplyURL      string           `json:"applyUrl,omitempty"`
	Deadline      *time.Time       `json:"deadline,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

type JobSearchRequest struct {
	Category  string   `form:"category"`
	Skills    []string `form:"skills"`
	Search    string   `form:"search"`
	BudgetMin *float64 `form:"budgetMin"`
	BudgetMax *float64 `form:"budgetMax"`
	Page      int      `form:"page"`
	PageSize  int      `form:"pageSize"`
}
