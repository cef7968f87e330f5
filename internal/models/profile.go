package models

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Profile struct {
	BaseModel
	UserID      string         `gorm:"not null;uniqueIndex"`
	Title       string
	Bio         string         `gorm:"type:text"`
	Skills      pq.StringArray `gorm:"type:text[]"`
	HourlyRate  *float64
	Location    string
	AvatarURL   string
	Languages   datatypes.JSON `gorm:"type:jsonb"` // [{"name": "English", "level": "fluent"}]
	Portfolio   datatypes.JSON `gorm:"type:jsonb"` // [{"title", "description", "url", "imageUrl"}]
	Employment  datatypes.JSON `gorm:"type:jsonb"` // [{"company", "position", "from", "to"}]
	Education   datatypes.JSON `gorm:"type:jsonb"`
	Preferences datatypes.JSON `gorm:"type:jsonb"` // job preferences used for digests
}
