package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string         `gorm:"not null;index"`
	Type    string         `gorm:"not null"` // "message", "proposal", "payment", "review", "system"
	Title   string         `gorm:"not null"`
	Message string
	Data    datatypes.JSON `gorm:"type:jsonb"` // {"relatedId": "...", "relatedType": "...", "actorId": "..."}
	IsRead  bool           `gorm:"default:false;index"`
	ReadAt  *time.Time
}
