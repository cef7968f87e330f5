package models

import (
	"time"

	"github.com/lib/pq"
)

type Job struct {
	BaseModel
	ClientID    string         `gorm:"not null;index"`
	Title       string         `gorm:"not null"`
	Description string         `gorm:"type:text"`
	Category    string         `gorm:"index"`
	Skills      pq.StringArray `gorm:"type:text[]"`
	BudgetMin   float64
	BudgetMax   float64
	Duration    string
	Status      JobStatus `gorm:"type:varchar(20);default:'active';index"`
	Views       int       `gorm:"default:0"`

	// Verification payment, set once the client's job_verification
	// charge settles
	PaymentVerified bool    `gorm:"default:false"`
	PaymentID       *string `gorm:"index"`

	// External gig fields, set only for ingested postings
	IsExternal bool   `gorm:"default:false;index:idx_jobs_external,priority:1"`
	Source     string `gorm:"index:idx_jobs_external,priority:2"`
	ExternalID string `gorm:"index:idx_jobs_external,priority:3"`
	Company    string
	ApplyURL   string
	Deadline   *time.Time

	// Relations
	Client    *User      `gorm:"foreignKey:ClientID"`
	Proposals []Proposal `gorm:"foreignKey:JobID"`
}
