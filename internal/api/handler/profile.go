package handler

import (
	"anonchat/backend/internal/config"
	"anonchat/backend/internal/models"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

type profileRequest struct {
	Nickname string `json:"nickname"`
	Gender   string `json:"gender"`
	Country  string `json:"country"`
	Avatar   string `json:"avatar"`
	Language string `json:"language"`
}

// validateNickname is the decode boundary for the one field every surface
// displays. Rejecting here keeps malformed records out of the store.
func validateNickname(nickname string) (string, bool) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" || utf8.RuneCountInString(nickname) > config.MaxNicknameLen {
		return "", false
	}
	return nickname, true
}

// CreateProfile stores the viewer's profile. When Postgres is down the
// profile is kept in memory only, flagged mock, so the app remains usable.
func (h *Handler) CreateProfile(c *gin.Context) {
	uid := c.GetString("uid")

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed body"})
		return
	}

	nickname, ok := validateNickname(req.Nickname)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nickname is required and limited to 32 characters"})
		return
	}
	if !models.ValidGenders[req.Gender] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown gender value"})
		return
	}

	profile := &models.Profile{
		UID:        uid,
		Nickname:   nickname,
		Gender:     req.Gender,
		Country:    strings.TrimSpace(req.Country),
		Avatar:     req.Avatar,
		Language:   defaultLanguage(req.Language),
		Role:       "user",
		IsOnline:   true,
		LastActive: time.Now().UnixMilli(),
	}

	if err := h.Storage.SaveProfile(profile); err != nil {
		log.Printf("WARNING: Postgres unavailable, keeping profile %s in memory: %v", uid, err)
		h.mockMu.Lock()
		h.mockProfiles[uid] = profile
		h.mockMu.Unlock()
		c.JSON(http.StatusOK, gin.H{"profile": profile, "mock": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile, "mock": false})
}

// GetOwnProfile returns the viewer's profile.
func (h *Handler) GetOwnProfile(c *gin.Context) {
	profile, err := h.loadProfile(c.GetString("uid"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No profile yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile applies a partial update to the whitelisted display fields.
// Role and block list are never writable through this path.
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid := c.GetString("uid")

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed body"})
		return
	}

	updates := map[string]interface{}{"last_active": time.Now().UnixMilli()}
	if req.Nickname != "" {
		nickname, ok := validateNickname(req.Nickname)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nickname limited to 32 characters"})
			return
		}
		updates["nickname"] = nickname
	}
	if req.Gender != "" {
		if !models.ValidGenders[req.Gender] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown gender value"})
			return
		}
		updates["gender"] = req.Gender
	}
	if req.Country != "" {
		updates["country"] = strings.TrimSpace(req.Country)
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}
	if req.Language != "" {
		updates["language"] = req.Language
	}

	// Mock-mode profiles are updated in place.
	h.mockMu.Lock()
	if mock, ok := h.mockProfiles[uid]; ok {
		applyMockUpdates(mock, updates)
		h.mockMu.Unlock()
		c.JSON(http.StatusOK, gin.H{"profile": mock, "mock": true})
		return
	}
	h.mockMu.Unlock()

	if err := h.Storage.UpdateProfile(uid, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.Status(http.StatusNoContent)
}

func applyMockUpdates(p *models.Profile, updates map[string]interface{}) {
	for col, val := range updates {
		s, _ := val.(string)
		switch col {
		case "nickname":
			p.Nickname = s
		case "gender":
			p.Gender = s
		case "country":
			p.Country = s
		case "avatar":
			p.Avatar = s
		case "language":
			p.Language = s
		case "last_active":
			if ms, ok := val.(int64); ok {
				p.LastActive = ms
			}
		}
	}
}

func defaultLanguage(lang string) string {
	if lang == "" {
		return "en"
	}
	return lang
}
