package storage

import (
	"errors"
	"log"

	"campuslink/backend/internal/models"

	"gorm.io/gorm"
)

// FindRoomBetween returns the id of the room both users hold a membership
// row for, or "" when no such room exists. This is the intersection query
// that keeps find-or-create idempotent.
func (s *Service) FindRoomBetween(emailA, emailB string) (string, error) {
	var roomID string
	// Перетин membership-рядків обох користувачів.
	err := s.DB.Raw(`
        SELECT rm1.room_id
        FROM room_members rm1
        JOIN room_members rm2 ON rm1.room_id = rm2.room_id
        WHERE rm1.email = ? AND rm2.email = ?
        LIMIT 1
    `, emailA, emailB).Scan(&roomID).Error
	if err != nil {
		log.Printf("ERROR: Failed to look up room between %s and %s: %v", emailA, emailB, err)
		return "", err
	}
	return roomID, nil
}

// CreateRoomWithMembers creates the room and one membership row per email
// in a single transaction, so a half-created room can never be observed.
func (s *Service) CreateRoomWithMembers(room *models.ChatRoom, emails []string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		for _, email := range emails {
			member := models.RoomMember{RoomID: room.RoomID, Email: email}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetRoomByID повертає кімнату або (nil, nil), якщо її не існує.
func (s *Service) GetRoomByID(roomID string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := s.DB.Where("room_id = ?", roomID).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get room %s: %v", roomID, err)
		return nil, err
	}
	return &room, nil
}

// IsRoomMember reports whether the user holds a membership row for the room.
func (s *Service) IsRoomMember(roomID, email string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.RoomMember{}).
		Where("room_id = ? AND email = ?", roomID, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetInbox returns one entry per room the user belongs to, with the
// counterpart's public fields and the last message time. Rooms without
// messages keep a NULL last_time and trail the active ones, newest room
// first among themselves.
func (s *Service) GetInbox(email string) ([]models.InboxEntry, error) {
	var entries []models.InboxEntry
	err := s.DB.Raw(`
        SELECT c.room_id,
               c.post_id,
               u.name  AS other_name,
               u.email AS other_email,
               (SELECT MAX(m.timestamp) FROM messages m WHERE m.room_id = c.room_id) AS last_time
        FROM chat_rooms c
        JOIN room_members me ON me.room_id = c.room_id AND me.email = ?
        LEFT JOIN room_members other ON other.room_id = c.room_id AND other.email <> ?
        LEFT JOIN users u ON u.email = other.email
        ORDER BY last_time DESC NULLS LAST, c.created_at DESC
    `, email, email).Scan(&entries).Error
	if err != nil {
		log.Printf("ERROR: Failed to fetch inbox for %s: %v", email, err)
		return nil, err
	}
	return entries, nil
}

// GetRoomHistory отримує історію повідомлень для кімнати
func (s *Service) GetRoomHistory(roomID string) ([]models.Message, error) {
	var history []models.Message
	// Завантажуємо історію, сортуючи за часом створення
	if err := s.DB.Where("room_id = ?", roomID).Order("timestamp asc").Find(&history).Error; err != nil {
		log.Printf("ERROR: Failed to get chat history for room %s: %v", roomID, err)
		return nil, err
	}
	return history, nil
}

// SaveMessage зберігає повідомлення в PostgreSQL.
func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for room %s: %v", msg.RoomID, err)
		return err
	}
	return nil
}

// MarkMessagesSeen flips seen=true on every unseen message in the room that
// the reader did not send. Running it twice is a no-op.
func (s *Service) MarkMessagesSeen(roomID, readerEmail string) error {
	return s.DB.Model(&models.Message{}).
		Where("room_id = ? AND sender_email <> ? AND seen = ?", roomID, readerEmail, false).
		Update("seen", true).Error
}
