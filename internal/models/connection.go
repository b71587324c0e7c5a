package models

import "time"

// Connection request states.
const (
	ConnectionPending  = "pending"
	ConnectionAccepted = "accepted"
	ConnectionRejected = "rejected"
)

// Connection is a directed connection request between two users. Once
// accepted it is treated as a bidirectional link.
type Connection struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	FromEmail string `gorm:"not null;uniqueIndex:idx_conn_pair" json:"fromEmail"`
	ToEmail   string `gorm:"not null;uniqueIndex:idx_conn_pair" json:"toEmail"`
	// Status: "pending", "accepted" або "rejected".
	Status    string    `gorm:"not null" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}
