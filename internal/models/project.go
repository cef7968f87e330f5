package models

import (
	"time"

	"gorm.io/datatypes"
)

type Project struct {
	BaseModel
	JobID        string `gorm:"index"`
	ProposalID   string `gorm:"index"`
	ClientID     string `gorm:"not null;index"`
	FreelancerID string `gorm:"not null;index"`
	Title        string `gorm:"not null"`
	Description  string `gorm:"type:text"`
	Budget       float64
	Status       ProjectStatus  `gorm:"type:varchar(20);default:'ongoing';index"`
	Milestones   datatypes.JSON `gorm:"type:jsonb"` // [{"title", "amount", "dueDate", "completed"}]
	CompletedAt  *time.Time

	// Relations
	Client     *User     `gorm:"foreignKey:ClientID"`
	Freelancer *User     `gorm:"foreignKey:FreelancerID"`
	Contract   *Contract `gorm:"foreignKey:ProjectID"`
}
