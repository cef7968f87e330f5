package services

import (
	"encoding/json"

	"gorm.io/datatypes"

	"connecta_backend/internal/logger"
	"connecta_backend/internal/models"
	"connecta_backend/internal/push"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type NotificationService interface {
	// Notify persists a notification and pushes it over the socket.
	// Failures are logged, never propagated: a broken notification must
	// not fail the operation that triggered it.
	Notify(userID, notifType, title, message string, data map[string]string)

	List(userID string, page, pageSize int) (*dto.PagedResponse[dto.NotificationResponse], error)
	UnreadCount(userID string) (int64, error)
	MarkRead(notificationID, userID string) error
	MarkAllRead(userID string) (int64, error)
	Delete(notificationID, userID string) error
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	emitter          RealtimeEmitter
	push             push.Provider
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, userRepo repositories.UserRepository, emitter RealtimeEmitter, pushProvider push.Provider) NotificationService {
	if emitter == nil {
		emitter = NoopEmitter{}
	}
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		emitter:          emitter,
		push:             pushProvider,
	}
}

func (s *NotificationServiceImpl) Notify(userID, notifType, title, message string, data map[string]string) {
	var payload datatypes.JSON
	if len(data) > 0 {
		raw, err := json.Marshal(data)
		if err == nil {
			payload = datatypes.JSON(raw)
		}
	}

	notification := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    payload,
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		logger.SideEffectLog("persist notification", err, "user_id", userID, "type", notifType)
		return
	}

	s.emitter.EmitToUser(userID, EventNotificationNew, toNotificationResponse(notification))
	s.sendPush(userID, title, message, data)
}

// sendPush delivers the notification to the user's registered devices.
func (s *NotificationServiceImpl) sendPush(userID, title, message string, data map[string]string) {
	if s.push == nil {
		return
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		logger.SideEffectLog("push recipient lookup", err, "user_id", userID)
		return
	}
	if len(user.PushTokens) == 0 {
		return
	}

	if err := s.push.Send(user.PushTokens, title, message, data); err != nil {
		logger.SideEffectLog("push notification", err, "user_id", userID)
	}
}

func (s *NotificationServiceImpl) List(userID string, page, pageSize int) (*dto.PagedResponse[dto.NotificationResponse], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	notifications, total, err := s.notificationRepo.FindByUser(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, *toNotificationResponse(&notifications[i]))
	}
	return dto.NewPagedResponse(items, total, page, pageSize), nil
}

func (s *NotificationServiceImpl) UnreadCount(userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *NotificationServiceImpl) MarkRead(notificationID, userID string) error {
	if err := s.notificationRepo.MarkRead(notificationID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllRead(userID string) (int64, error) {
	count, err := s.notificationRepo.MarkAllRead(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *NotificationServiceImpl) Delete(notificationID, userID string) error {
	if err := s.notificationRepo.Delete(notificationID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
