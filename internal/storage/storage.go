package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"campuslink/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the persistence boundary for the whole application. The chat
// service, the HTTP handlers and the moderation service all talk to this
// interface; *Service is the PostgreSQL+Redis implementation and the tests
// substitute a mock.
type Storage interface {
	SaveUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	UpdateUserReputation(email string, delta int) error

	FindRoomBetween(emailA, emailB string) (string, error)
	CreateRoomWithMembers(room *models.ChatRoom, emails []string) error
	GetRoomByID(roomID string) (*models.ChatRoom, error)
	IsRoomMember(roomID, email string) (bool, error)
	GetInbox(email string) ([]models.InboxEntry, error)
	GetRoomHistory(roomID string) ([]models.Message, error)
	SaveMessage(msg *models.Message) error
	MarkMessagesSeen(roomID, readerEmail string) error

	SaveConnection(conn *models.Connection) error
	FindConnection(emailA, emailB string) (*models.Connection, error)
	DeleteConnection(id uint) error
	ListConnections(email, status string) ([]models.Connection, error)

	SaveReport(report *models.Report) error
	CountRecentReports(email string, since time.Time) (int64, error)

	IsUserBanned(email string) (bool, error)
	BanUser(email string, duration time.Duration) error
	UnbanUser(email string) error
}

// Service implements Storage over gorm (PostgreSQL) and go-redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// SaveUser зберігає користувача в PostgreSQL
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// GetUserByEmail шукає користувача за email. Returns (nil, nil) when no
// account exists, so callers can decide between NotFound and a store error.
func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get user %s: %v", email, err)
		return nil, err
	}
	return &user, nil
}

// GetUserByID шукає користувача за його UUID.
func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get user by id %s: %v", id, err)
		return nil, err
	}
	return &user, nil
}

// UpdateUserReputation знижує або підвищує репутацію користувача.
func (s *Service) UpdateUserReputation(email string, delta int) error {
	return s.DB.Model(&models.User{}).
		Where("email = ?", email).
		Update("reputation_score", gorm.Expr("reputation_score + ?", delta)).Error
}

// SaveConnection зберігає запит на з'єднання.
func (s *Service) SaveConnection(conn *models.Connection) error {
	return s.DB.Save(conn).Error
}

// FindConnection returns the connection between two users regardless of
// which side initiated it, or (nil, nil) when none exists.
func (s *Service) FindConnection(emailA, emailB string) (*models.Connection, error) {
	var conn models.Connection
	err := s.DB.
		Where("(from_email = ? AND to_email = ?) OR (from_email = ? AND to_email = ?)",
			emailA, emailB, emailB, emailA).
		First(&conn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// DeleteConnection видаляє запит (withdraw).
func (s *Service) DeleteConnection(id uint) error {
	return s.DB.Delete(&models.Connection{}, id).Error
}

// ListConnections returns every connection involving the user with the
// given status ("pending", "accepted", ...).
func (s *Service) ListConnections(email, status string) ([]models.Connection, error) {
	var conns []models.Connection
	err := s.DB.
		Where("status = ?", status).
		Where("from_email = ? OR to_email = ?", email, email).
		Order("updated_at DESC").
		Find(&conns).Error
	if err != nil {
		log.Printf("ERROR: Failed to list connections for %s: %v", email, err)
		return nil, err
	}
	return conns, nil
}

// SaveReport зберігає скаргу на користувача.
func (s *Service) SaveReport(report *models.Report) error {
	result := s.DB.Create(report)
	if result.Error != nil {
		log.Printf("ERROR: Failed to save report for room %s: %v", report.RoomID, result.Error)
		return result.Error
	}
	return nil
}

// CountRecentReports рахує скарги на користувача, подані після since.
func (s *Service) CountRecentReports(email string, since time.Time) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Report{}).
		Where("reported_email = ? AND created_at >= ?", email, since).
		Count(&count).Error
	return count, err
}

// IsUserBanned перевіряє статус бану в Redis (швидка перевірка)
func (s *Service) IsUserBanned(email string) (bool, error) {
	key := "ban:" + email
	status, err := s.Redis.Get(s.Ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return status != "", nil
}

// BanUser ставить ключ бану в Redis. A zero duration bans until unban.
func (s *Service) BanUser(email string, duration time.Duration) error {
	return s.Redis.Set(s.Ctx, "ban:"+email, "active", duration).Err()
}

// UnbanUser знімає бан.
func (s *Service) UnbanUser(email string) error {
	return s.Redis.Del(s.Ctx, "ban:"+email).Err()
}
