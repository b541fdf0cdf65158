package handler

import (
	"anonchat/backend/internal/chathub"
	"anonchat/backend/internal/localization"
	"anonchat/backend/internal/models"
	"anonchat/backend/internal/moderation"
	"anonchat/backend/internal/privatechat"
	"anonchat/backend/internal/storage"
	"sync"
)

// Handler carries the HTTP surface's dependencies.
type Handler struct {
	Hub        *chathub.ManagerService
	Storage    storage.Storage
	Private    *privatechat.Service
	Moderation *moderation.Service
	Localizer  *localization.Localizer
	JWTSecret  []byte

	// mockProfiles is the non-persisted fallback used when Postgres is
	// unreachable at profile creation. Nothing stored here survives a
	// restart; it exists so the app stays usable in demo mode.
	mockMu       sync.RWMutex
	mockProfiles map[string]*models.Profile
}

func NewHandler(hub *chathub.ManagerService, s storage.Storage, pc *privatechat.Service,
	mod *moderation.Service, loc *localization.Localizer, jwtSecret []byte) *Handler {
	return &Handler{
		Hub:          hub,
		Storage:      s,
		Private:      pc,
		Moderation:   mod,
		Localizer:    loc,
		JWTSecret:    jwtSecret,
		mockProfiles: make(map[string]*models.Profile),
	}
}

// loadProfile resolves a profile from Postgres, falling back to the in-memory
// mock store. Returns nil when the identity has no profile yet.
func (h *Handler) loadProfile(uid string) (*models.Profile, error) {
	p, err := h.Storage.GetProfile(uid)
	if err == nil && p != nil {
		return p, nil
	}
	h.mockMu.RLock()
	mock := h.mockProfiles[uid]
	h.mockMu.RUnlock()
	if mock != nil {
		return mock, nil
	}
	return nil, err
}
