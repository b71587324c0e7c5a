package models

import "time"

// Message represents a saved chat message in the PostgreSQL database.
// A message is an immutable fact once created; only the Seen flag ever
// changes, and it changes monotonically from false to true.
type Message struct {
	// ID is server-generated in creation order: "msg-<unix ms>-<suffix>".
	ID string `gorm:"primaryKey" json:"id"`
	// RoomID is the identifier of the chat room the message belongs to.
	RoomID string `gorm:"not null;index:idx_room_time" json:"roomId"`
	// SenderEmail is the identity that sent the message.
	SenderEmail string `gorm:"not null" json:"from"`
	// Content is the message text. Never empty after trimming.
	Content string `gorm:"type:text;not null" json:"content"`
	// Timestamp is assigned by the server at persistence time so that
	// ordering stays authoritative regardless of client clocks.
	Timestamp time.Time `gorm:"not null;index:idx_room_time" json:"timestamp"`
	// Seen flips to true once the other participant opens the room.
	Seen bool `gorm:"not null;default:false" json:"seen"`
}
