package dto

import (
	"time"

	"connecta_backend/internal/models"
)

type CreatePaymentRequest struct {
	PayeeID     string  `json:"payeeId" validate:"required,uuid"`
	ProjectID   *string `json:"projectId" validate:"omitempty,uuid"`
	JobID       *string `json:"jobId" validate:"omitempty,uuid"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"omitempty,len=3"`
	PaymentType string  `json:"paymentType" validate:"required,oneof=project milestone job_verification"`
	UseEscrow   bool    `json:"useEscrow"`
}

type PaymentResponse struct {
	ID           string               `json:"id"`
	PayerID      string               `json:"payerId"`
	PayeeID      string               `json:"payeeId"`
	ProjectID    *string              `json:"projectId,omitempty"`
	JobID        *string              `json:"jobId,omitempty"`
	Amount       float64              `json:"amount"`
	Fee          float64              `json:"fee"`
	NetAmount    float64              `json:"netAmount"`
	Currency     string               `json:"currency"`
	PaymentType  string               `json:"paymentType"`
	Status       models.PaymentStatus `json:"status"`
	EscrowStatus models.EscrowStatus  `json:"escrowStatus"`
	CheckoutURL  string               `json:"checkoutUrl,omitempty"`
	GatewayRef   string               `json:"gatewayRef,omitempty"`
	CompletedAt  *time.Time           `json:"completedAt,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
}

type WalletResponse struct {
	UserID        string  `json:"userId"`
	Balance       float64 `json:"balance"`
	EscrowBalance float64 `json:"escrowBalance"`
	TotalSpent    float64 `json:"totalSpent"`
	TotalEarned   float64 `json:"totalEarned"`
	Currency      string  `json:"currency"`
}

type TransactionResponse struct {
	ID            string                 `json:"id"`
	Type          models.TransactionType `json:"type"`
	Amount        float64                `json:"amount"`
	BalanceBefore float64                `json:"balanceBefore"`
	BalanceAfter  float64                `json:"balanceAfter"`
	Description   string                 `json:"description"`
	CreatedAt     time.Time              `json:"createdAt"`
}

type GatewayWebhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		TxRef  string  `json:"tx_ref"`
		FlwRef string  `json:"flw_ref"`
		Amount float64 `json:"amount"`
		Status string  `json:"status"`
	} `json:"data"`
}
