package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"connecta_backend/internal/models"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type messageFixture struct {
	svc           *MessageServiceImpl
	conversations *fakeConversationRepo
	collabo       *fakeCollaboRepo
	emitter       *fakeEmitter
	notifications *fakeNotifications
	client        *models.User
	freelancer    *models.User
}

func newMessageFixture(t *testing.T) *messageFixture {
	t.Helper()
	client := &models.User{Email: "client@test.io", FullName: "Carla Client", UserType: models.UserTypeClient}
	freelancer := &models.User{Email: "dev@test.io", FullName: "Fred Freelancer", UserType: models.UserTypeFreelancer}
	users := newFakeUserRepo(client, freelancer)
	conversations := newFakeConversationRepo()
	collabo := newFakeCollaboRepo()
	emitter := &fakeEmitter{}
	notifications := &fakeNotifications{}
	svc := NewMessageService(conversations, collabo, users, notifications, emitter).(*MessageServiceImpl)
	return &messageFixture{
		svc:           svc,
		conversations: conversations,
		collabo:       collabo,
		emitter:       emitter,
		notifications: notifications,
		client:        client,
		freelancer:    freelancer,
	}
}

func (f *messageFixture) start(t *testing.T) *dto.ConversationResponse {
	t.Helper()
	conv, err := f.svc.StartConversation(f.client.ID, &dto.StartConversationRequest{ParticipantID: f.freelancer.ID})
	require.NoError(t, err)
	f.emitter.events = nil
	return conv
}

func TestStartConversationIdempotent(t *testing.T) {
	t.Parallel()
	f := newMessageFixture(t)

	first, err := f.svc.StartConversation(f.client.ID, &dto.StartConversationRequest{ParticipantID: f.freelancer.ID})
	require.NoError(t, err)

	// Opening the same pair from the other side lands on the same row.
	second, err := f.svc.StartConversation(f.freelancer.ID, &dto.StartConversationRequest{ParticipantID: f.client.ID})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, f.conversations.creates)
	assert.Equal(t, f.freelancer.ID, first.OtherUserID)
	assert.Equal(t, "Fred Freelancer", first.OtherUserName)
}

func TestStartConversationNotifiesBothParticipants(t *testing.T) {
	t.Parallel()
	f := newMessageFixture(t)

	_, err := f.svc.StartConversation(f.client.ID, &dto.StartConversationRequest{ParticipantID: f.freelancer.ID})
	require.NoError(t, err)

	clientEvents := f.emitter.eventsFor(f.client.ID)
	freelancerEvents := f.emitter.eventsFor(f.freelancer.ID)
	require.Len(t, clientEvents, 1)
	require.Len(t, freelancerEvents, 1)
	assert.Equal(t, EventConversationUpdate, clientEvents[0].Event)
	assert.Equal(t, EventConversationUpdate, freelancerEvents[0].Event)

	// Reopening is silent.
	_, err = f.svc.StartConversation(f.client.ID, &dto.StartConversationRequest{ParticipantID: f.freelancer.ID})
	require.NoError(t, err)
	assert.Len(t, f.emitter.events, 2)
}

func TestStartConversationPerProject(t *testing.T) {
	t.Parallel()
	f := newMessageFixture(t)

	projectID := newID()
	general, err := f.svc.StartConversation(f.client.ID, &dto.StartConversationRequest{ParticipantID: f.freelancer.ID})
	require.NoError(t, err)
	scoped, err := f.svc.StartConversation(f.client.ID, &dto.StartConversationRequest{ParticipantID: f.freelancer.ID, ProjectID: &projectID})
	require.NoError(t, err)

	assert.NotEqual(t, general.ID, scoped.ID)
	assert.Equal(t, 2, f.conversations.creates)
}

func TestStartConversationWithSelf(t *testing.T) {
	t.Parallel()
	f := newMessageFixture(t)

	_, err := f.svc.StartConversation(f.client.ID, &dto.StartConversationRequest{ParticipantID: f.client.ID})
	assert.ErrorIs(t, err, apperrors.ErrCannotActOnSelf)
}

func TestSendMessage(t *testing.T) {
	t.Parallel()
	f := newMessageFixture(t)
	conv := f.start(t)

	msg, err := f.svc.SendMessage(f.client.ID, conv.ID, &dto.SendMessageRequest{Text: "hello there"})
	require.NoError(t, err)
	assert.Equal(t, f.client.ID, msg.SenderID)
	assert.Equal(t, f.freelancer.ID, msg.ReceiverID)
	assert.Equal(t, "hello there", msg.Text)

	stored := f.conversations.conversations[conv.ID]
	assert.Equal(t, "hello there", stored.LastMessage)
	assert.Equal(t, 1, unreadFor(stored.UnreadCounts, f.freelancer.ID))
	assert.Equal(t, 0, unreadFor(stored.UnreadCounts, f.client.ID))

	receiverEvents := f.emitter.eventsFor(f.freelancer.ID)
	require.Len(t, receiverEvents, 2)
	assert.Equal(t, EventMessageReceive, receiverEvents[0].Event)
	assert.Equal(t, EventConversationUpdate, receiverEvents[1].Event)

	senderEvents := f.emitter.eventsFor(f.client.ID)
	require.Len(t, senderEvents, 1)
	assert.Equal(t, EventConversationUpdate, senderEvents[0].Event)

	require.Len(t, f.notifications.sent, 1)
	assert.Equal(t, f.freelancer.ID, f.notifications.sent[0].UserID)
	assert.Equal(t, "message", f.notifications.sent[0].Type)
}

func TestSendMessageToReceiverReusesConversation(t *testing.T) {
	t.Parallel()
	f := newMessageFixture(t)
	conv := f.start(t)

	msg, err := f.svc.SendMessage(f.client.ID, "", &dto.SendMessageRequest{
		ReceiverID: f.freelancer.ID,
		Text:       "found you",
	})
	require.NoError(t, err)

	assert.Equal(t, conv.ID, msg.ConversationID)
	assert.Equal(t, 1, f.conversations.creates)
	assert.Len(t, f.conversations.messages[conv.ID], 1)
}

func TestSendMessageToReceiverCreatesConversation(t *testing.T) {
	t.Parallel()
	f := newMessageFixture(t)

	msg, err := f.svc.SendMessage(f.client.ID, "", &dto.SendMessageRequest{
		ReceiverID: f.freelancer.ID,
		Text:       "first contact",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.conversations.creates)
	assert.Len(t, f.conversations.messages[msg.ConversationID], 1)
}

func TestSendMessageWithoutTarget(t *testing.T) {
	t.Parallel()
	f := newMessageFixture(t)

	_, err := f.svc.SendMessage(f.client.ID, "", &dto.SendMessageRequest{Text: "lost"})
	assert.Error(t, err)
}

func TestSendMessageNeedsContent(t *testing.T) {
	t.Parallel()
	f := newMessageFixture(t)
	conv := f.start(t)

	_, err := f.svc.SendMessage(f.client.ID, conv.ID, &dto.SendMessageRequest{})
	assert.Error(t, err)
}

func TestSendMessageOutsiderForbidden(t *testing.T) {
	t.Parallel()
	f := newMessageFixture(t)
	conv := f.start(t)

	_, err := f.svc.SendMessage(newID(), conv.ID, &dto.SendMessageRequest{Text: "intrusion"})
	assert.Error(t, err)
}

func TestMessagesBetweenUsers(t *testing.T) {
	t.Parallel()
	f := newMessageFixture(t)
	conv := f.start(t)

	_, err := f.svc.SendMessage(f.client.ID, conv.ID, &dto.SendMessageRequest{Text: "one"})
	require.NoError(t, err)
	_, err = f.svc.SendMessage(f.freelancer.ID, conv.ID, &dto.SendMessageRequest{Text: "two"})
	require.NoError(t, err)

	page, err := f.svc.GetMessagesBetweenUsers(f.client.ID, f.freelancer.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 2)
}

func TestMessagesBetweenStrangersIsEmpty(t *testing.T) {
	t.Parallel()
	f := newMessageFixture(t)

	page, err := f.svc.GetMessagesBetweenUsers(f.client.ID, f.freelancer.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
	assert.Empty(t, page.Items)
}

func TestDeleteMessage(t *testing.T) {
	t.Parallel()
	f := newMessageFixture(t)
	conv := f.start(t)

	msg, err := f.svc.SendMessage(f.client.ID, conv.ID, &dto.SendMessageRequest{Text: "oops"})
	require.NoError(t, err)

	// The receiver cannot remove the sender's message.
	err = f.svc.DeleteMessage(f.freelancer.ID, msg.ID)
	assert.Error(t, err)
	assert.Len(t, f.conversations.messages[conv.ID], 1)

	require.NoError(t, f.svc.DeleteMessage(f.client.ID, msg.ID))
	assert.Empty(t, f.conversations.messages[conv.ID])

	err = f.svc.DeleteMessage(f.client.ID, msg.ID)
	assert.Error(t, err)
}

func TestMarkRead(t *testing.T) {
	t.Parallel()
	f := newMessageFixture(t)
	conv := f.start(t)

	_, err := f.svc.SendMessage(f.client.ID, conv.ID, &dto.SendMessageRequest{Text: "one"})
	require.NoError(t, err)
	_, err = f.svc.SendMessage(f.client.ID, conv.ID, &dto.SendMessageRequest{Text: "two"})
	require.NoError(t, err)

	total, err := f.svc.UnreadTotal(f.freelancer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	require.NoError(t, f.svc.MarkRead(f.freelancer.ID, conv.ID))

	total, err = f.svc.UnreadTotal(f.freelancer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	for _, m := range f.conversations.messages[conv.ID] {
		assert.True(t, m.IsRead)
	}
}

func TestUnreadTotalIncludesWorkspaces(t *testing.T) {
	t.Parallel()
	f := newMessageFixture(t)
	conv := f.start(t)

	_, err := f.svc.SendMessage(f.client.ID, conv.ID, &dto.SendMessageRequest{Text: "ping"})
	require.NoError(t, err)

	// The freelancer also carries unseen activity in a team workspace.
	freelancerID := f.freelancer.ID
	require.NoError(t, f.collabo.Create(&models.CollaboProject{
		OwnerID:      f.client.ID,
		Title:        "Launch team",
		Status:       models.CollaboStatusInProgress,
		UnreadCounts: datatypes.JSONMap{freelancerID: 3},
		Roles: []models.CollaboRole{
			{Title: "Backend", Status: models.CollaboRoleStatusFilled, AssigneeID: &freelancerID},
		},
	}))

	total, err := f.svc.UnreadTotal(f.freelancer.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	// The conversation counter alone for the other side.
	total, err = f.svc.UnreadTotal(f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}
