package models

import "time"

// ChatRoom represents a private conversation channel between members.
// Participants are not stored on the room itself; each one holds a
// RoomMember row pointing at the room (the membership edge).
type ChatRoom struct {
	// RoomID is the unique identifier for the chat room (UUID).
	RoomID string `gorm:"primaryKey" json:"roomId"`
	// PostID optionally references the marketplace post that originated
	// the room. Rooms opened directly between connected users leave it nil.
	PostID *string `json:"postId"`
	// CreatedAt is the timestamp when the chat room was created.
	CreatedAt time.Time `json:"createdAt"`
}

// RoomMember is the membership edge: it asserts that the user identified
// by Email belongs to the room. Find-or-create between two users resolves
// by intersecting these rows, never by fields on the room.
type RoomMember struct {
	ID     uint   `gorm:"primaryKey"`
	RoomID string `gorm:"not null;uniqueIndex:idx_room_member"`
	Email  string `gorm:"not null;uniqueIndex:idx_room_member"`
}

// InboxEntry is the UI-facing shape of one inbox row: the room, the
// counterpart's public fields and the time of the last message in the room.
// LastTime is nil for rooms with no messages yet (rendered as "New").
type InboxEntry struct {
	RoomID     string     `json:"roomId"`
	PostID     *string    `json:"postId"`
	OtherName  string     `json:"otherName"`
	OtherEmail string     `json:"otherEmail"`
	LastTime   *time.Time `json:"lastTime"`
}
