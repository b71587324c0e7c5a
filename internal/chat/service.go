// Package chat provides the room lifecycle and message persistence logic:
// find-or-create between two identities, inbox and history hydration,
// message append and seen tracking. All room-scoped operations resolve
// membership before touching the store.
package chat

import (
	"fmt"
	"strings"
	"time"

	"campuslink/backend/internal/apperr"
	"campuslink/backend/internal/models"
	"campuslink/backend/internal/storage"

	"github.com/google/uuid"
)

// Service handles the business logic of chat rooms and messages.
type Service struct {
	Storage storage.Storage
}

// NewService creates a new chat service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// FindOrCreateRoom returns the id of the room shared by the two users,
// creating it (with both membership rows) when none exists. Repeated calls
// for the same pair, in either argument order, return the same room.
// An optional post id records what originated the room.
func (s *Service) FindOrCreateRoom(emailA, emailB string, postID *string) (string, error) {
	for _, email := range []string{emailA, emailB} {
		user, err := s.Storage.GetUserByEmail(email)
		if err != nil {
			return "", storeErr(err)
		}
		if user == nil {
			return "", fmt.Errorf("%w: user %s", apperr.ErrNotFound, email)
		}
	}

	roomID, err := s.Storage.FindRoomBetween(emailA, emailB)
	if err != nil {
		return "", storeErr(err)
	}
	if roomID != "" {
		return roomID, nil
	}

	room := &models.ChatRoom{
		RoomID:    uuid.New().String(),
		PostID:    postID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Storage.CreateRoomWithMembers(room, []string{emailA, emailB}); err != nil {
		return "", storeErr(err)
	}
	return room.RoomID, nil
}

// Inbox returns the user's rooms ordered by last activity. Rooms with no
// messages still appear, with a nil last-activity time.
func (s *Service) Inbox(email string) ([]models.InboxEntry, error) {
	entries, err := s.Storage.GetInbox(email)
	if err != nil {
		return nil, storeErr(err)
	}
	return entries, nil
}

// History returns the room's messages in chronological order. The requester
// must be a member of the room.
func (s *Service) History(roomID, requesterEmail string) ([]models.Message, error) {
	if err := s.requireMembership(roomID, requesterEmail); err != nil {
		return nil, err
	}
	history, err := s.Storage.GetRoomHistory(roomID)
	if err != nil {
		return nil, storeErr(err)
	}
	return history, nil
}

// Append persists one message with a server-generated id and timestamp and
// seen=false, and returns the stored record. The sender must be a member of
// the room; content must be non-empty after trimming.
func (s *Service) Append(roomID, senderEmail, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: empty message content", apperr.ErrValidation)
	}
	if roomID == "" {
		return nil, fmt.Errorf("%w: missing room id", apperr.ErrValidation)
	}
	if err := s.requireMembership(roomID, senderEmail); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:          newMessageID(),
		RoomID:      roomID,
		SenderEmail: senderEmail,
		Content:     content,
		Timestamp:   time.Now().UTC(),
		Seen:        false,
	}
	if err := s.Storage.SaveMessage(msg); err != nil {
		return nil, storeErr(err)
	}
	return msg, nil
}

// MarkSeen flips seen=true on every message in the room the reader did not
// send. Idempotent; the reader must be a member of the room.
func (s *Service) MarkSeen(roomID, readerEmail string) error {
	if err := s.requireMembership(roomID, readerEmail); err != nil {
		return err
	}
	if err := s.Storage.MarkMessagesSeen(roomID, readerEmail); err != nil {
		return storeErr(err)
	}
	return nil
}

// requireMembership fails with ErrNotFound when the room does not exist and
// ErrForbidden when the user holds no membership row for it.
func (s *Service) requireMembership(roomID, email string) error {
	room, err := s.Storage.GetRoomByID(roomID)
	if err != nil {
		return storeErr(err)
	}
	if room == nil {
		return fmt.Errorf("%w: room %s", apperr.ErrNotFound, roomID)
	}
	member, err := s.Storage.IsRoomMember(roomID, email)
	if err != nil {
		return storeErr(err)
	}
	if !member {
		return fmt.Errorf("%w: %s is not a member of room %s", apperr.ErrForbidden, email, roomID)
	}
	return nil
}

// newMessageID keeps ids distinguishable by creation order: a millisecond
// prefix plus a random suffix against collisions under concurrent sends.
func newMessageID() string {
	return fmt.Sprintf("msg-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
}
