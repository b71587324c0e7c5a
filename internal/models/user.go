package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // Необхідний для pq.StringArray
	"gorm.io/gorm"
)

// Roles a campus account may register under.
const (
	RoleStudent = "Student"
	RoleFaculty = "Faculty"
	RoleAlumni  = "Alumni"
	RoleStaff   = "Staff"
)

// AllowedRoles lists every role accepted at registration time.
var AllowedRoles = []string{RoleStudent, RoleFaculty, RoleAlumni, RoleStaff}

// IsAllowedRole reports whether role is one of the registerable account types.
func IsAllowedRole(role string) bool {
	for _, r := range AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User представляє обліковий запис у системі.
// The email is the stable identity key consumed by the chat core;
// everything else is profile data.
type User struct {
	ID         string `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Password   string `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Role       string `gorm:"not null" json:"role"`
	Department string `gorm:"not null" json:"department"`

	// Optional profile fields, editable via /user/update.
	About       string         `json:"about"`
	Location    string         `json:"location"`
	CurrentRole string         `json:"currentRole"`
	Image       string         `json:"image"`
	Interests   pq.StringArray `gorm:"type:text[]" json:"interests"` // Для зберігання тегів

	// ReputationScore is cut by confirmed reports; see internal/moderation.
	ReputationScore int `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// BeforeCreate це хук GORM, який викликається перед створенням запису.
// Він генерує новий UUID для користувача, якщо ID ще не встановлено.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
