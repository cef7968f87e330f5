package dto

import (
	"time"

	"connecta_backend/internal/models"
)

type CreateProposalRequest struct {
	JobID       string  `json:"jobId" validate:"required,uuid"`
	CoverLetter string  `json:"coverLetter" validate:"required,min=20"`
	BidAmount   float64 `json:"bidAmount" validate:"required,gt=0"`
	Duration    string  `json:"duration" validate:"omitempty,max=100"`
}

type ProposalResponse struct {
	ID             string                `json:"id"`
	JobID          string                `json:"jobId"`
	JobTitle       string                `json:"jobTitle,omitempty"`
	FreelancerID   string                `json:"freelancerId"`
	FreelancerName string                `json:"freelancerName,omitempty"`
	CoverLetter    string                `json:"coverLetter"`
	BidAmount      float64               `json:"bidAmount"`
	Duration       string                `json:"duration"`
	Status         models.ProposalStatus `json:"status"`
	CreatedAt      time.Time             `json:"createdAt"`
}

// AcceptProposalResponse carries everything created by an acceptance.
type AcceptProposalResponse struct {
	Proposal *ProposalResponse `json:"proposal"`
	Project  *ProjectResponse  `json:"project"`
	Contract *ContractResponse `json:"contract"`
}
