package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report statuses. Transitions out of "pending" are performed only by an
// admin-role viewer.
const (
	ReportStatusPending   = "pending"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// Report is one entry in the global moderation queue.
type Report struct {
	ReportID   string `gorm:"primaryKey" json:"id"`
	ReporterID string `gorm:"type:text;not null" json:"reporter"`
	TargetID   string `gorm:"type:text;not null;index" json:"target"`
	Reason     string `gorm:"type:text;not null" json:"reason"`
	// Severity is a triage weight derived from the reason; higher surfaces
	// first in the admin queue.
	Severity  int    `json:"severity"`
	Status    string `gorm:"type:text;not null;default:pending;index" json:"status"`
	CreatedAt int64  `gorm:"autoCreateTime:milli" json:"timestamp"`
}

// BeforeCreate assigns a fresh UUID when none was set.
func (r *Report) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ReportID == "" {
		r.ReportID = uuid.New().String()
	}
	return
}
