package dto

import "time"

type UpsertExternalGigRequest struct {
	Source      string     `json:"source" validate:"required,min=2,max=50"`
	ExternalID  string     `json:"externalId" validate:"required,min=1,max=200"`
	Title       string     `json:"title" validate:"required,min=3,max=300"`
	Description string     `json:"description" validate:"omitempty"`
	Category    string     `json:"category" validate:"omitempty,max=100"`
	Skills      []string   `json:"skills" validate:"omitempty,max=30"`
	BudgetMin   float64    `json:"budgetMin" validate:"gte=0"`
	BudgetMax   float64    `json:"budgetMax" validate:"gte=0"`
	Company     string     `json:"company" validate:"omitempty,max=200"`
	ApplyURL    string     `json:"applyUrl" validate:"omitempty,url"`
	Deadline    *time.Time `json:"deadline"`
}

type ExternalGigResponse struct {
	Job     *JobResponse `json:"job"`
	Created bool         `json:"created"`
}
