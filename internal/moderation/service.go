// Package moderation provides the core logic for handling user reports,
// including reputation management and applying bans.
package moderation

import (
	"fmt"
	"time"

	"campuslink/backend/internal/apperr"
	"campuslink/backend/internal/config"
	"campuslink/backend/internal/models"
	"campuslink/backend/internal/storage"
)

// Service handles the business logic for reports.
type Service struct {
	Storage storage.Storage
}

// NewService creates a new moderation service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// HandleReport processes a new report: both parties must belong to the
// room, the severity must be known, and a confirmed report cuts the
// reported user's reputation before the ban thresholds are re-checked.
func (s *Service) HandleReport(report *models.Report) error {
	weight, ok := config.ReportWeights[report.Severity]
	if !ok {
		return fmt.Errorf("%w: unknown severity %q", apperr.ErrValidation, report.Severity)
	}
	if report.ReporterEmail == report.ReportedEmail {
		return fmt.Errorf("%w: cannot report yourself", apperr.ErrValidation)
	}

	for _, email := range []string{report.ReporterEmail, report.ReportedEmail} {
		member, err := s.Storage.IsRoomMember(report.RoomID, email)
		if err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
		}
		if !member {
			return fmt.Errorf("%w: %s is not a member of room %s", apperr.ErrForbidden, email, report.RoomID)
		}
	}

	if err := s.Storage.SaveReport(report); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}
	if err := s.Storage.UpdateUserReputation(report.ReportedEmail, -weight); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}

	return s.CheckForBan(report.ReportedEmail)
}

// CheckForBan bans a user whose reputation fell below the threshold or who
// collected too many reports inside the frequency window.
func (s *Service) CheckForBan(email string) error {
	user, err := s.Storage.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %s", apperr.ErrNotFound, email)
	}

	// Threshold Ban
	if user.ReputationScore < config.BanThresholdReputation {
		return s.Storage.BanUser(email, config.BanReputationDuration)
	}

	// Frequency Ban
	count, err := s.Storage.CountRecentReports(email, time.Now().Add(-config.BanFrequencyWindow))
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}
	if count > config.BanThresholdFrequency {
		return s.Storage.BanUser(email, config.BanFrequencyDuration)
	}

	return nil
}
