package dto

import (
	"encoding/json"
	"time"
)

type NotificationResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
	IsRead    bool            `json:"isRead"`
	CreatedAt time.Time       `json:"createdAt"`
}

type DashboardResponse struct {
	ActiveProjects      int64   `json:"activeProjects"`
	CompletedProjects   int64   `json:"completedProjects"`
	PendingProposals    int64   `json:"pendingProposals"`
	UnreadMessages      int64   `json:"unreadMessages"`
	UnreadNotifications int64   `json:"unreadNotifications"`
	WalletBalance       float64 `json:"walletBalance"`
	EscrowBalance       float64 `json:"escrowBalance"`
	TotalEarned         float64 `json:"totalEarned"`
	TotalSpent          float64 `json:"totalSpent"`
}
