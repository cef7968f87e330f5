package models

import (
	"time"

	"gorm.io/datatypes"
)

type Contract struct {
	BaseModel
	ProjectID    string `gorm:"not null;uniqueIndex"`
	ClientID     string `gorm:"not null;index"`
	FreelancerID string `gorm:"not null;index"`
	Terms        string `gorm:"type:text"`
	Amount       float64
	Status       ContractStatus `gorm:"type:varchar(30);default:'draft';index"`
	// Per-party signatures: {"client": {"signedAt", "name", "ip"}, "freelancer": {...}}
	Signatures   datatypes.JSON `gorm:"type:jsonb"`
	StartDate    *time.Time
	EndDate      *time.Time
	CompletedAt  *time.Time
	TerminatedAt *time.Time
}
