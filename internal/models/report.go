package models

import "time"

// Report is a moderation complaint filed by one room participant against
// the other. Severity drives the reputation penalty (see internal/config).
type Report struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	ReporterEmail string `gorm:"not null" json:"reporterEmail"`
	ReportedEmail string `gorm:"not null;index" json:"reportedEmail"`
	RoomID        string `gorm:"not null" json:"roomId"`
	Reason        string `gorm:"type:text" json:"reason"`
	// Severity: "Low", "Medium" або "Critical".
	Severity  string    `gorm:"not null" json:"severity"`
	CreatedAt time.Time `json:"createdAt"`
}
