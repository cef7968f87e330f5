package models

import (
	"time"

	"gorm.io/datatypes"
)

type Conversation struct {
	BaseModel
	// Sorted participant pair, so the same two users map to one row.
	ParticipantA  string  `gorm:"not null;index:idx_conversations_pair,unique,priority:1"`
	ParticipantB  string  `gorm:"not null;index:idx_conversations_pair,unique,priority:2"`
	ProjectID     *string `gorm:"index:idx_conversations_pair,unique,priority:3"`
	LastMessage   string
	LastMessageAt *time.Time
	UnreadCounts  datatypes.JSONMap `gorm:"type:jsonb"` // per-participant unread counters

	// Relations
	Messages []Message `gorm:"foreignKey:ConversationID"`
}

// Participants returns both member ids.
func (c *Conversation) Participants() []string {
	return []string{c.ParticipantA, c.ParticipantB}
}

// OtherParticipant returns the counterpart of userID, or "" if userID
// is not a member.
func (c *Conversation) OtherParticipant(userID string) string {
	switch userID {
	case c.ParticipantA:
		return c.ParticipantB
	case c.ParticipantB:
		return c.ParticipantA
	}
	return ""
}

type Message struct {
	BaseModel
	ConversationID string         `gorm:"not null;index"`
	SenderID       string         `gorm:"not null;index"`
	ReceiverID     string         `gorm:"not null;index"`
	Text           string         `gorm:"type:text"`
	Attachments    datatypes.JSON `gorm:"type:jsonb"` // [{"url", "name", "mimeType", "size"}]
	IsRead         bool           `gorm:"default:false"`
	ReadAt         *time.Time
}
