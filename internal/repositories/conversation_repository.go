package repositories

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"connecta_backend/internal/models"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
)

type ConversationRepository interface {
	FindByID(id string) (*models.Conversation, error)
	FindByPair(participantA, participantB string, projectID *string) (*models.Conversation, error)
	Create(conversation *models.Conversation) error
	FindByUser(userID string, limit, offset int) ([]models.Conversation, int64, error)
	UpdateLastMessage(conversationID, text string, at time.Time) error
	SetUnreadCounts(conversationID string, counts datatypes.JSONMap) error

	// Message operations
	CreateMessage(message *models.Message) error
	FindMessageByID(id string) (*models.Message, error)
	FindMessages(conversationID string, limit, offset int) ([]models.Message, int64, error)
	MarkMessagesRead(conversationID, readerID string) (int64, error)
	DeleteMessage(id string) error
}

type ConversationRepositoryImpl struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &ConversationRepositoryImpl{db: db}
}

func (r *ConversationRepositoryImpl) FindByID(id string) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.First(&conversation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

// FindByPair looks up the conversation for a sorted participant pair.
// Callers are expected to pass the pair already sorted.
func (r *ConversationRepositoryImpl) FindByPair(participantA, participantB string, projectID *string) (*models.Conversation, error) {
	query := r.db.Where("participant_a = ? AND participant_b = ?", participantA, participantB)
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	} else {
		query = query.Where("project_id IS NULL")
	}

	var conversation models.Conversation
	err := query.First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *ConversationRepositoryImpl) Create(conversation *models.Conversation) error {
	return r.db.Create(conversation).Error
}

func (r *ConversationRepositoryImpl) FindByUser(userID string, limit, offset int) ([]models.Conversation, int64, error) {
	base := r.db.Model(&models.Conversation{}).
		Where("participant_a = ? OR participant_b = ?", userID, userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var conversations []models.Conversation
	err := r.db.Where("participant_a = ? OR participant_b = ?", userID, userID).
		Order("last_message_at DESC NULLS LAST").
		Limit(limit).Offset(offset).Find(&conversations).Error
	return conversations, total, err
}

func (r *ConversationRepositoryImpl) UpdateLastMessage(conversationID, text string, at time.Time) error {
	result := r.db.Model(&models.Conversation{}).Where("id = ?", conversationID).Updates(map[string]interface{}{
		"last_message":    text,
		"last_message_at": at,
		"updated_at":      time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConversationNotFound
	}
	return nil
}

func (r *ConversationRepositoryImpl) SetUnreadCounts(conversationID string, counts datatypes.JSONMap) error {
	result := r.db.Model(&models.Conversation{}).Where("id = ?", conversationID).
		Update("unread_counts", counts)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConversationNotFound
	}
	return nil
}

// Message operations

func (r *ConversationRepositoryImpl) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *ConversationRepositoryImpl) FindMessages(conversationID string, limit, offset int) ([]models.Message, int64, error) {
	var total int64
	if err := r.db.Model(&models.Message{}).Where("conversation_id = ?", conversationID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&messages).Error
	return messages, total, err
}

func (r *ConversationRepositoryImpl) FindMessageByID(id string) (*models.Message, error) {
	var message models.Message
	err := r.db.First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *ConversationRepositoryImpl) DeleteMessage(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Message{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// MarkMessagesRead flags every unread message addressed to the reader.
func (r *ConversationRepositoryImpl) MarkMessagesRead(conversationID, readerID string) (int64, error) {
	now := time.Now()
	result := r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", conversationID, readerID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		})
	return result.RowsAffected, result.Error
}
