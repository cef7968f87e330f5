package services

import (
	"sort"
	"time"

	"gorm.io/datatypes"

	"connecta_backend/internal/logger"
	"connecta_backend/internal/models"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

// attachmentPlaceholder is the conversation preview text for messages that
// carry files but no text.
const attachmentPlaceholder = "📎 Attachment"

type MessageService interface {
	StartConversation(userID string, req *dto.StartConversationRequest) (*dto.ConversationResponse, error)
	ListConversations(userID string, page, pageSize int) (*dto.PagedResponse[dto.ConversationResponse], error)
	SendMessage(senderID, conversationID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetMessages(userID, conversationID string, page, pageSize int) (*dto.PagedResponse[dto.MessageResponse], error)
	GetMessagesBetweenUsers(userID, otherUserID string, page, pageSize int) (*dto.PagedResponse[dto.MessageResponse], error)
	DeleteMessage(userID, messageID string) error
	MarkRead(userID, conversationID string) error
	UnreadTotal(userID string) (int, error)
}

type MessageServiceImpl struct {
	conversationRepo repositories.ConversationRepository
	collaboRepo      repositories.CollaboRepository
	userRepo         repositories.UserRepository
	notifications    NotificationService
	emitter          RealtimeEmitter
}

func NewMessageService(
	conversationRepo repositories.ConversationRepository,
	collaboRepo repositories.CollaboRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
	emitter RealtimeEmitter,
) MessageService {
	return &MessageServiceImpl{
		conversationRepo: conversationRepo,
		collaboRepo:      collaboRepo,
		userRepo:         userRepo,
		notifications:    notifications,
		emitter:          emitter,
	}
}

// ---------------- Conversations ----------------

// StartConversation returns the existing conversation for the pair (and
// optional project) or creates one. Idempotent.
func (s *MessageServiceImpl) StartConversation(userID string, req *dto.StartConversationRequest) (*dto.ConversationResponse, error) {
	conversation, err := s.findOrCreateConversation(userID, req.ParticipantID, req.ProjectID)
	if err != nil {
		return nil, err
	}
	return s.toConversationResponse(conversation, userID), nil
}

// findOrCreateConversation resolves the pair's conversation (plus optional
// project), creating it on first contact. Both participants get a
// conversation:update event when a new one appears.
func (s *MessageServiceImpl) findOrCreateConversation(userID, otherID string, projectID *string) (*models.Conversation, error) {
	if otherID == userID {
		return nil, apperrors.ErrCannotActOnSelf
	}
	if _, err := s.userRepo.FindByID(otherID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	a, b := sortPair(userID, otherID)
	conversation, err := s.conversationRepo.FindByPair(a, b, projectID)
	if err == nil {
		return conversation, nil
	}
	if !apperrors.Is(err, repositories.ErrConversationNotFound) {
		return nil, apperrors.InternalError(err)
	}

	conversation = &models.Conversation{
		ParticipantA: a,
		ParticipantB: b,
		ProjectID:    projectID,
		UnreadCounts: datatypes.JSONMap{a: 0, b: 0},
	}
	if err := s.conversationRepo.Create(conversation); err != nil {
		return nil, apperrors.InternalError(err)
	}

	created := map[string]interface{}{
		"conversationId": conversation.ID,
		"participants":   conversation.Participants(),
	}
	s.emitter.EmitToUser(a, EventConversationUpdate, created)
	s.emitter.EmitToUser(b, EventConversationUpdate, created)
	return conversation, nil
}

func (s *MessageServiceImpl) ListConversations(userID string, page, pageSize int) (*dto.PagedResponse[dto.ConversationResponse], error) {
	page, pageSize = defaultPage(page, pageSize)
	conversations, total, err := s.conversationRepo.FindByUser(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		items = append(items, *s.toConversationResponse(&conversations[i], userID))
	}
	return dto.NewPagedResponse(items, total, page, pageSize), nil
}

// ---------------- Messages ----------------

// SendMessage delivers into an existing conversation, or when no
// conversation id is given, into the sender/receiver pair's conversation
// (found or created).
func (s *MessageServiceImpl) SendMessage(senderID, conversationID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if req.Text == "" && len(req.Attachments) == 0 {
		return nil, apperrors.NewBadRequestError("Message needs text or attachments")
	}

	var conversation *models.Conversation
	var err error
	if conversationID == "" {
		if req.ReceiverID == "" {
			return nil, apperrors.NewBadRequestError("Message needs a conversation or a receiver")
		}
		conversation, err = s.findOrCreateConversation(senderID, req.ReceiverID, nil)
	} else {
		conversation, err = s.memberConversation(senderID, conversationID)
	}
	if err != nil {
		return nil, err
	}
	conversationID = conversation.ID
	receiverID := conversation.OtherParticipant(senderID)

	text := req.Text
	if text == "" {
		text = attachmentPlaceholder
	}
	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Text:           text,
		Attachments:    datatypes.JSON(req.Attachments),
	}
	if err := s.conversationRepo.CreateMessage(message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	if err := s.conversationRepo.UpdateLastMessage(conversationID, text, now); err != nil {
		logger.SideEffectLog("update conversation preview", err, "conversation_id", conversationID)
	}

	counts := conversation.UnreadCounts
	if counts == nil {
		counts = datatypes.JSONMap{}
	}
	counts[receiverID] = unreadFor(counts, receiverID) + 1
	if err := s.conversationRepo.SetUnreadCounts(conversationID, counts); err != nil {
		logger.SideEffectLog("bump unread counter", err, "conversation_id", conversationID)
	}

	resp := toMessageResponse(message)
	s.emitter.EmitToUser(receiverID, EventMessageReceive, resp)
	update := map[string]interface{}{
		"conversationId": conversationID,
		"lastMessage":    text,
		"lastMessageAt":  now,
	}
	s.emitter.EmitToUser(receiverID, EventConversationUpdate, update)
	s.emitter.EmitToUser(senderID, EventConversationUpdate, update)

	s.notifications.Notify(receiverID, "message", "New message", text,
		map[string]string{"relatedId": conversationID, "relatedType": "conversation", "actorId": senderID})

	return resp, nil
}

func (s *MessageServiceImpl) GetMessages(userID, conversationID string, page, pageSize int) (*dto.PagedResponse[dto.MessageResponse], error) {
	if _, err := s.memberConversation(userID, conversationID); err != nil {
		return nil, err
	}

	page, pageSize = defaultPage(page, pageSize)
	messages, total, err := s.conversationRepo.FindMessages(conversationID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, *toMessageResponse(&messages[i]))
	}
	return dto.NewPagedResponse(items, total, page, pageSize), nil
}

// GetMessagesBetweenUsers pages the caller's history with one other user
// (the pair's 2-participant conversation). No conversation yet is an empty
// page, not an error.
func (s *MessageServiceImpl) GetMessagesBetweenUsers(userID, otherUserID string, page, pageSize int) (*dto.PagedResponse[dto.MessageResponse], error) {
	if otherUserID == userID {
		return nil, apperrors.ErrCannotActOnSelf
	}

	page, pageSize = defaultPage(page, pageSize)
	a, b := sortPair(userID, otherUserID)
	conversation, err := s.conversationRepo.FindByPair(a, b, nil)
	if err != nil {
		if apperrors.Is(err, repositories.ErrConversationNotFound) {
			return dto.NewPagedResponse([]dto.MessageResponse{}, 0, page, pageSize), nil
		}
		return nil, apperrors.InternalError(err)
	}

	messages, total, err := s.conversationRepo.FindMessages(conversation.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, *toMessageResponse(&messages[i]))
	}
	return dto.NewPagedResponse(items, total, page, pageSize), nil
}

// DeleteMessage removes one message. Only its sender can.
func (s *MessageServiceImpl) DeleteMessage(userID, messageID string) error {
	message, err := s.conversationRepo.FindMessageByID(messageID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrMessageNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if message.SenderID != userID {
		return apperrors.NewForbiddenError("Message belongs to another sender")
	}
	if err := s.conversationRepo.DeleteMessage(messageID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// MarkRead flags the reader's unread messages and zeroes their counter.
func (s *MessageServiceImpl) MarkRead(userID, conversationID string) error {
	conversation, err := s.memberConversation(userID, conversationID)
	if err != nil {
		return err
	}

	if _, err := s.conversationRepo.MarkMessagesRead(conversationID, userID); err != nil {
		return apperrors.InternalError(err)
	}

	counts := conversation.UnreadCounts
	if counts == nil {
		counts = datatypes.JSONMap{}
	}
	counts[userID] = 0
	if err := s.conversationRepo.SetUnreadCounts(conversationID, counts); err != nil {
		return apperrors.InternalError(err)
	}

	s.emitter.EmitToUser(conversation.OtherParticipant(userID), EventConversationUpdate, map[string]interface{}{
		"conversationId": conversationID,
		"readBy":         userID,
	})
	return nil
}

// UnreadTotal sums the caller's unread counters across all conversations
// and their team project workspaces.
func (s *MessageServiceImpl) UnreadTotal(userID string) (int, error) {
	conversations, _, err := s.conversationRepo.FindByUser(userID, 500, 0)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	total := 0
	for i := range conversations {
		total += unreadFor(conversations[i].UnreadCounts, userID)
	}

	workspaces, _, err := s.collaboRepo.FindByMember(userID, 500, 0)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	for i := range workspaces {
		total += unreadFor(workspaces[i].UnreadCounts, userID)
	}
	return total, nil
}

func (s *MessageServiceImpl) memberConversation(userID, conversationID string) (*models.Conversation, error) {
	conversation, err := s.conversationRepo.FindByID(conversationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrConversationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if conversation.OtherParticipant(userID) == "" {
		return nil, apperrors.NewForbiddenError("Conversation belongs to other users")
	}
	return conversation, nil
}

func (s *MessageServiceImpl) toConversationResponse(c *models.Conversation, viewerID string) *dto.ConversationResponse {
	resp := &dto.ConversationResponse{
		ID:            c.ID,
		Participants:  c.Participants(),
		ProjectID:     c.ProjectID,
		LastMessage:   c.LastMessage,
		LastMessageAt: c.LastMessageAt,
		UnreadCount:   unreadFor(c.UnreadCounts, viewerID),
		CreatedAt:     c.CreatedAt,
	}
	if other := c.OtherParticipant(viewerID); other != "" {
		resp.OtherUserID = other
		if user, err := s.userRepo.FindByID(other); err == nil {
			resp.OtherUserName = user.FullName
		}
	}
	return resp
}

func sortPair(a, b string) (string, string) {
	pair := []string{a, b}
	sort.Strings(pair)
	return pair[0], pair[1]
}
