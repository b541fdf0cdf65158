package config

import "time"

const (
	// Realtime
	TypingStaleness     = 2 * time.Second
	MessageHistoryLimit = 50
	PresenceTTL         = 24 * time.Hour

	// Profiles
	MaxNicknameLen = 32
	MaxMessageLen  = 2000
	MaxReasonLen   = 500

	// Moderation
	DefaultBanDuration = 24 * time.Hour
	MaxBanDuration     = 30 * 24 * time.Hour

	// Auth
	TokenTTL  = 72 * time.Hour
	JWTIssuer = "anonchat-service"
)

// ReportSeverity maps a report reason to its triage weight. Unlisted reasons
// fall back to DefaultReportSeverity.
var ReportSeverity = map[string]int{
	"spam":          5,
	"inappropriate": 50,
	"harassment":    50,
	"abuse":         250,
	"threats":       250,
}

const DefaultReportSeverity = 10

// SeverityFor returns the triage weight for a report reason.
func SeverityFor(reason string) int {
	if w, ok := ReportSeverity[reason]; ok {
		return w
	}
	return DefaultReportSeverity
}
