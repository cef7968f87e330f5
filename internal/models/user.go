package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null"`
	UserType     UserType `gorm:"type:varchar(20);not null"`
	FullName     string   `gorm:"not null"`
	IsActive     bool     `gorm:"default:true"`
	IsVerified   bool     `gorm:"default:false"`
	IsPremium    bool     `gorm:"default:false"`
	OTPCode      string
	OTPExpiresAt *time.Time
	LastSeenAt   *time.Time
	PushTokens   pq.StringArray `gorm:"type:text[]"` // registered device tokens

	// Reputation, recomputed by the reputation service
	AverageRating   float64        `gorm:"default:0"`
	TotalReviews    int            `gorm:"default:0"`
	JobSuccessScore float64        `gorm:"default:100"`
	Badges          datatypes.JSON `gorm:"type:jsonb"` // ["rising_talent", "top_rated"]

	// Relations
	Profile       *Profile       `gorm:"foreignKey:UserID"`
	Wallet        *Wallet        `gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
