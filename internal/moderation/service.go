// Package moderation provides the viewer-local block list, the global report
// queue and the profanity filter.
package moderation

import (
	"anonchat/backend/internal/config"
	"anonchat/backend/internal/models"
	"anonchat/backend/internal/storage"
	"errors"
	"strings"
)

var (
	// ErrSelfTarget is returned when a user blocks or reports themselves.
	ErrSelfTarget = errors.New("cannot target yourself")
	// ErrEmptyReason is returned for a report without a reason.
	ErrEmptyReason = errors.New("report reason is required")
	// ErrReportNotFound is returned for transitions on a missing report.
	ErrReportNotFound = errors.New("report not found")
	// ErrReportDecided is returned when resolving or dismissing a report that
	// is no longer pending.
	ErrReportDecided = errors.New("report already decided")
)

// Service handles the business logic for moderation.
type Service struct {
	Storage storage.Storage
}

// NewService creates a new moderation service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// Block adds target to self's own block list. Blocking hides the target's
// messages for self only; the shared log and other viewers are unaffected.
func (s *Service) Block(selfUID, targetUID string) error {
	if selfUID == "" {
		return nil
	}
	if targetUID == "" || selfUID == targetUID {
		return ErrSelfTarget
	}
	return s.Storage.AddBlockedUser(selfUID, targetUID)
}

// Unblock removes target from self's block list.
func (s *Service) Unblock(selfUID, targetUID string) error {
	if selfUID == "" {
		return nil
	}
	return s.Storage.RemoveBlockedUser(selfUID, targetUID)
}

// Report appends a pending report to the global queue. The severity weight
// is derived from the reason and only affects triage ordering; no automatic
// action is taken against the target.
func (s *Service) Report(reporterUID, targetUID, reason string) (*models.Report, error) {
	if reporterUID == "" {
		return nil, nil
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyReason
	}
	if len(reason) > config.MaxReasonLen {
		reason = reason[:config.MaxReasonLen]
	}
	if targetUID == "" || reporterUID == targetUID {
		return nil, ErrSelfTarget
	}

	r := &models.Report{
		ReporterID: reporterUID,
		TargetID:   targetUID,
		Reason:     reason,
		Severity:   config.SeverityFor(reason),
		Status:     models.ReportStatusPending,
	}
	if err := s.Storage.SaveReport(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Resolve closes a pending report as actioned. When blockTarget is set the
// reported user is added to the reviewing admin's own block list; there is
// no global ban from a report.
func (s *Service) Resolve(adminUID, reportID string, blockTarget bool) error {
	r, err := s.pendingReport(reportID)
	if err != nil {
		return err
	}
	if blockTarget {
		if err := s.Storage.AddBlockedUser(adminUID, r.TargetID); err != nil {
			return err
		}
	}
	return s.Storage.UpdateReportStatus(reportID, models.ReportStatusResolved)
}

// Dismiss closes a pending report without action.
func (s *Service) Dismiss(adminUID, reportID string) error {
	if _, err := s.pendingReport(reportID); err != nil {
		return err
	}
	return s.Storage.UpdateReportStatus(reportID, models.ReportStatusDismissed)
}

func (s *Service) pendingReport(reportID string) (*models.Report, error) {
	r, err := s.Storage.GetReport(reportID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrReportNotFound
	}
	if r.Status != models.ReportStatusPending {
		return nil, ErrReportDecided
	}
	return r, nil
}

// FilterForViewer drops messages whose sender the viewer has blocked. The
// predicate is viewer-local: it never mutates the shared log.
func FilterForViewer(messages []models.Message, viewer *models.Profile) []models.Message {
	if viewer == nil || len(viewer.BlockedUsers) == 0 {
		return messages
	}
	visible := messages[:0]
	for _, m := range messages {
		if !viewer.HasBlocked(m.SenderID) {
			visible = append(visible, m)
		}
	}
	return visible
}
