package moderation_test

import (
	"time"

	"campuslink/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) UpdateUserReputation(email string, delta int) error {
	args := m.Called(email, delta)
	return args.Error(0)
}

func (m *MockStorage) FindRoomBetween(emailA, emailB string) (string, error) {
	args := m.Called(emailA, emailB)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) CreateRoomWithMembers(room *models.ChatRoom, emails []string) error {
	args := m.Called(room, emails)
	return args.Error(0)
}

func (m *MockStorage) GetRoomByID(roomID string) (*models.ChatRoom, error) {
	args := m.Called(roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRoom), args.Error(1)
}

func (m *MockStorage) IsRoomMember(roomID, email string) (bool, error) {
	args := m.Called(roomID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) GetInbox(email string) ([]models.InboxEntry, error) {
	args := m.Called(email)
	return args.Get(0).([]models.InboxEntry), args.Error(1)
}

func (m *MockStorage) GetRoomHistory(roomID string) ([]models.Message, error) {
	args := m.Called(roomID)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) MarkMessagesSeen(roomID, readerEmail string) error {
	args := m.Called(roomID, readerEmail)
	return args.Error(0)
}

func (m *MockStorage) SaveConnection(conn *models.Connection) error {
	args := m.Called(conn)
	return args.Error(0)
}

func (m *MockStorage) FindConnection(emailA, emailB string) (*models.Connection, error) {
	args := m.Called(emailA, emailB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Connection), args.Error(1)
}

func (m *MockStorage) DeleteConnection(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) ListConnections(email, status string) ([]models.Connection, error) {
	args := m.Called(email, status)
	return args.Get(0).([]models.Connection), args.Error(1)
}

func (m *MockStorage) SaveReport(report *models.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *MockStorage) CountRecentReports(email string, since time.Time) (int64, error) {
	args := m.Called(email, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) IsUserBanned(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) BanUser(email string, duration time.Duration) error {
	args := m.Called(email, duration)
	return args.Error(0)
}

func (m *MockStorage) UnbanUser(email string) error {
	args := m.Called(email)
	return args.Error(0)
}
