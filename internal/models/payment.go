package models

import (
	"time"

	"gorm.io/datatypes"
)

type Payment struct {
	BaseModel
	PayerID      string  `gorm:"not null;index"`
	PayeeID      string  `gorm:"not null;index"`
	ProjectID    *string `gorm:"index"`
	JobID        *string `gorm:"index"` // set for job_verification payments
	Amount       float64 `gorm:"not null"`
	Fee          float64
	NetAmount    float64
	Currency     string        `gorm:"type:varchar(10);default:'USD'"`
	PaymentType  string        `gorm:"type:varchar(30)"` // "project", "milestone", "job_verification"
	Status       PaymentStatus `gorm:"type:varchar(20);default:'pending';index"`
	UseEscrow    bool          `gorm:"default:false"`
	EscrowStatus EscrowStatus  `gorm:"type:varchar(20);default:'none'"`
	CompletedAt  *time.Time

	// Gateway details
	GatewayRef      string         `gorm:"index"`
	GatewayResponse datatypes.JSON `gorm:"type:jsonb"`
}

type Transaction struct {
	BaseModel
	UserID        string          `gorm:"not null;index"`
	PaymentID     *string         `gorm:"index"`
	Type          TransactionType `gorm:"type:varchar(30);not null"`
	Amount        float64         `gorm:"not null"`
	BalanceBefore float64
	BalanceAfter  float64
	Status        TransactionStatus `gorm:"type:varchar(20);default:'completed'"`
	Description   string
}

type Wallet struct {
	BaseModel
	UserID        string  `gorm:"not null;uniqueIndex"`
	Balance       float64 `gorm:"default:0"`
	EscrowBalance float64 `gorm:"default:0"`
	TotalSpent    float64 `gorm:"default:0"`
	TotalEarned   float64 `gorm:"default:0"`
	Currency      string  `gorm:"type:varchar(10);default:'USD'"`
}
