package services

// RealtimeEmitter pushes events to connected websocket clients. The ws
// manager implements it; services stay decoupled from the transport.
type RealtimeEmitter interface {
	EmitToUser(userID, event string, payload interface{})
}

// NoopEmitter drops every event. Used in tests and in the seed command.
type NoopEmitter struct{}

func (NoopEmitter) EmitToUser(userID, event string, payload interface{}) {}

// Realtime event names shared with the mobile client.
const (
	EventMessageReceive     = "message:receive"
	EventConversationUpdate = "conversation:update"
	EventNotificationNew    = "notification:new"
)
