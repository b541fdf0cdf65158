package storage

import (
	"anonchat/backend/internal/models"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SaveReport appends a report to the moderation queue.
func (s *Service) SaveReport(r *models.Report) error {
	if r.Status == "" {
		r.Status = models.ReportStatusPending
	}
	if err := s.DB.Create(r).Error; err != nil {
		log.Printf("ERROR: Failed to save report against %s: %v", r.TargetID, err)
		return err
	}
	return nil
}

// GetReport loads a report by id. Returns (nil, nil) when absent.
func (s *Service) GetReport(reportID string) (*models.Report, error) {
	var r models.Report
	err := s.DB.First(&r, "report_id = ?", reportID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListPendingReports returns the open queue, highest severity first so admins
// triage the worst reports before the noise.
func (s *Service) ListPendingReports() ([]models.Report, error) {
	var reports []models.Report
	err := s.DB.Where("status = ?", models.ReportStatusPending).
		Order("severity desc, created_at asc").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// UpdateReportStatus writes a report's lifecycle status.
func (s *Service) UpdateReportStatus(reportID, status string) error {
	return s.DB.Model(&models.Report{}).
		Where("report_id = ?", reportID).
		Update("status", status).Error
}

// BanUser sets the ban key for uid. Banned users are refused at the websocket
// gate; the key expires on its own.
func (s *Service) BanUser(uid string, d time.Duration) error {
	return s.Redis.Set(s.Ctx, "ban:"+uid, "active", d).Err()
}

// UnbanUser clears the ban key early.
func (s *Service) UnbanUser(uid string) error {
	return s.Redis.Del(s.Ctx, "ban:"+uid).Err()
}

// IsUserBanned checks the ban key in Redis.
func (s *Service) IsUserBanned(uid string) (bool, error) {
	status, err := s.Redis.Get(s.Ctx, "ban:"+uid).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return status != "", nil
}
