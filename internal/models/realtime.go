package models

import "time"

// Socket event names shared by both directions of the channel.
const (
	EventRoomJoin    = "room:join"
	EventRoomTyping  = "room:typing"
	EventRoomMessage = "room:message"
	EventRoomSeen    = "room:seen"
	EventRoomAck     = "room:ack"
	EventRoomError   = "room:error"
	EventPresence    = "presence:update"
)

// InboundEvent is the wire format for client → server socket frames.
type InboundEvent struct {
	Event   string `json:"event"`
	RoomID  string `json:"roomId"`
	Content string `json:"content,omitempty"`
	Typing  bool   `json:"typing,omitempty"`
}

// OutboundEvent is the envelope for server → client socket frames.
type OutboundEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// MessagePayload is the body of a relayed room:message event.
type MessagePayload struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	RoomID    string    `json:"roomId"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Seen      bool      `json:"seen"`
}

// TypingPayload is relayed to the other room subscribers only.
type TypingPayload struct {
	RoomID string `json:"roomId"`
	Email  string `json:"email"`
	Typing bool   `json:"typing"`
}

// SeenPayload is broadcast to every room subscriber, the reader included,
// so senders can flip their own bubbles to "seen".
type SeenPayload struct {
	RoomID string `json:"roomId"`
	By     string `json:"by"`
}

// AckPayload goes back to the sender alone so it can reconcile the
// optimistic local copy with the server-assigned message id.
type AckPayload struct {
	ID string `json:"id"`
}

// ErrorPayload notifies the originator that its event was rejected.
type ErrorPayload struct {
	RoomID string `json:"roomId"`
	Error  string `json:"error"`
}
