package dto

import (
	"encoding/json"
	"time"
)

type StartConversationRequest struct {
	ParticipantID string  `json:"participantId" validate:"required,uuid"`
	ProjectID     *string `json:"projectId" validate:"omitempty,uuid"`
}

type ConversationResponse struct {
	ID            string     `json:"id"`
	Participants  []string   `json:"participants"`
	OtherUserID   string     `json:"otherUserId,omitempty"`
	OtherUserName string     `json:"otherUserName,omitempty"`
	ProjectID     *string    `json:"projectId,omitempty"`
	LastMessage   string     `json:"lastMessage"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`
	UnreadCount   int        `json:"unreadCount"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type SendMessageRequest struct {
	// ReceiverID stands in for the conversation id, the pair's
	// two-participant conversation is found or created.
	ReceiverID  string          `json:"receiverId" validate:"omitempty,uuid"`
	Text        string          `json:"text" validate:"omitempty,max=10000"`
	Attachments json.RawMessage `json:"attachments"`
}

type MessageResponse struct {
	ID             string          `json:"id"`
	ConversationID string          `json:"conversationId"`
	SenderID       string          `json:"senderId"`
	ReceiverID     string          `json:"receiverId"`
	Text           string          `json:"text"`
	Attachments    json.RawMessage `json:"attachments,omitempty"`
	IsRead         bool            `json:"isRead"`
	CreatedAt      time.Time       `json:"createdAt"`
}
