package models

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type CollaboProject struct {
	BaseModel
	OwnerID      string `gorm:"not null;index"`
	Title        string `gorm:"not null"`
	Description  string `gorm:"type:text"`
	TotalBudget  float64
	Status       CollaboStatus     `gorm:"type:varchar(20);default:'open';index"`
	UnreadCounts datatypes.JSONMap `gorm:"type:jsonb"` // workspace unread per member

	// Relations
	Owner *User         `gorm:"foreignKey:OwnerID"`
	Roles []CollaboRole `gorm:"foreignKey:CollaboProjectID"`
}

type CollaboRole struct {
	BaseModel
	CollaboProjectID string `gorm:"not null;index"`
	Title            string `gorm:"not null"`
	Description      string `gorm:"type:text"`
	Budget           float64
	Skills           pq.StringArray    `gorm:"type:text[]"`
	Status           CollaboRoleStatus `gorm:"type:varchar(20);default:'open'"`
	AssigneeID       *string           `gorm:"index"`

	// Relations
	Assignee *User `gorm:"foreignKey:AssigneeID"`
}
