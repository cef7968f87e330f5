package dto

import (
	"encoding/json"
	"time"

	"connecta_backend/internal/models"
)

type ContractResponse struct {
	ID           string                `json:"id"`
	ProjectID    string                `json:"projectId"`
	ClientID     string                `json:"clientId"`
	FreelancerID string                `json:"freelancerId"`
	Terms        string                `json:"terms"`
	Amount       float64               `json:"amount"`
	Status       models.ContractStatus `json:"status"`
	Signatures   json.RawMessage       `json:"signatures,omitempty"`
	StartDate    *time.Time            `json:"startDate,omitempty"`
	EndDate      *time.Time            `json:"endDate,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
}

type SignContractRequest struct {
	Name string `json:"name" validate:"required,min=2,max=120"`
}

type UpdateContractRequest struct {
	Terms  string                `json:"terms" validate:"omitempty,max=20000"`
	Status models.ContractStatus `json:"status" validate:"omitempty,is-contract-status"`
}
