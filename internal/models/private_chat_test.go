package models_test

import (
	"anonchat/backend/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveChatID_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"a1", "b1"},
		{"b1", "a1"},
		{"zzz", "aaa"},
		{"550e8400-e29b-41d4-a716-446655440000", "00000000-0000-0000-0000-000000000001"},
	}
	for _, p := range pairs {
		assert.Equal(t, models.DeriveChatID(p[0], p[1]), models.DeriveChatID(p[1], p[0]),
			"chat id must not depend on argument order")
	}
}

func TestDeriveChatID_CanonicalFormat(t *testing.T) {
	// The wire format is pm_<sortedUid1>_<sortedUid2>.
	assert.Equal(t, "pm_a1_b1", models.DeriveChatID("a1", "b1"))
	assert.Equal(t, "pm_a1_b1", models.DeriveChatID("b1", "a1"))
	assert.Equal(t, "pm_aaa_zzz", models.DeriveChatID("zzz", "aaa"))
}

func TestIsPrivateChatID(t *testing.T) {
	assert.True(t, models.IsPrivateChatID("pm_a1_b1"))
	assert.False(t, models.IsPrivateChatID("general"))
	assert.False(t, models.IsPrivateChatID(""))
}

func TestPrivateChatHelpers(t *testing.T) {
	chat := &models.PrivateChat{
		ChatID:        "pm_a1_b1",
		User1ID:       "a1",
		User2ID:       "b1",
		User1Nickname: "Alpha",
		User2Nickname: "Beta",
		Unread1:       3,
		Unread2:       1,
	}

	assert.True(t, chat.HasParticipant("a1"))
	assert.True(t, chat.HasParticipant("b1"))
	assert.False(t, chat.HasParticipant("c1"))
	assert.False(t, chat.HasParticipant(""), "empty uid is never a participant")

	assert.Equal(t, "b1", chat.PartnerOf("a1"))
	assert.Equal(t, "a1", chat.PartnerOf("b1"))
	assert.Equal(t, "", chat.PartnerOf("c1"))

	assert.Equal(t, 3, chat.UnreadFor("a1"))
	assert.Equal(t, 1, chat.UnreadFor("b1"))
	assert.Equal(t, 0, chat.UnreadFor("c1"))

	assert.Equal(t, "Alpha", chat.ParticipantData("a1").Nickname)
	assert.Equal(t, "Beta", chat.ParticipantData("b1").Nickname)
}

func TestTypingActive_StalenessWindow(t *testing.T) {
	now := time.Now()
	window := 2 * time.Second

	assert.True(t, models.TypingActive(now, now, window))
	assert.True(t, models.TypingActive(now.Add(-1999*time.Millisecond), now, window))
	// An entry that exists but crossed the window is no longer live, even if
	// nothing deleted it yet.
	assert.False(t, models.TypingActive(now.Add(-2*time.Second), now, window))
	assert.False(t, models.TypingActive(now.Add(-time.Minute), now, window))
}

func TestProfileBlockAndFavorite(t *testing.T) {
	p := &models.Profile{
		UID:          "u1",
		Nickname:     "Tester",
		BlockedUsers: []string{"x1", "x2"},
		Favorites:    []string{"general"},
	}

	assert.True(t, p.HasBlocked("x1"))
	assert.False(t, p.HasBlocked("y1"))
	assert.True(t, p.HasFavorite("general"))
	assert.False(t, p.HasFavorite("tech"))
	assert.False(t, p.IsAdmin())

	p.Role = "admin"
	assert.True(t, p.IsAdmin())
}

func TestReportBeforeCreate_GeneratesID(t *testing.T) {
	r := &models.Report{ReporterID: "a1", TargetID: "b1", Reason: "spam"}
	assert.NoError(t, r.BeforeCreate(nil))
	assert.NotEmpty(t, r.ReportID)

	existing := &models.Report{ReportID: "fixed-id", ReporterID: "a1", TargetID: "b1"}
	assert.NoError(t, existing.BeforeCreate(nil))
	assert.Equal(t, "fixed-id", existing.ReportID)
}
