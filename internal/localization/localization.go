// Package localization resolves the system notices pushed into chats
// (private chat requests, accept confirmations, partner departures) to the
// recipient's language. Translations live in one JSON file per language code.
package localization

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultLanguage is the fallback when a key is missing for the requested
// language.
const DefaultLanguage = "en"

// Keys for the system notices pushed through the hub.
const (
	KeyRequestReceived = "private_request_received"
	KeyRequestAccepted = "private_request_accepted"
	KeyRequestRejected = "private_request_rejected"
	KeyPartnerLeft     = "partner_left"
)

// Localizer holds the loaded translation tables.
type Localizer struct {
	translations map[string]map[string]string
	mu           sync.RWMutex
}

// NewLocalizer loads every <lang>.json file from dir.
func NewLocalizer(dir string) (*Localizer, error) {
	l := &Localizer{translations: make(map[string]map[string]string)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read locales directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".json")

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", entry.Name(), err)
		}
		var table map[string]string
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", entry.Name(), err)
		}
		l.translations[lang] = table
	}

	// Gaps fall back to English at lookup time; surface them once at startup
	// so incomplete translations do not go unnoticed.
	base := l.translations[DefaultLanguage]
	for lang, table := range l.translations {
		if lang == DefaultLanguage {
			continue
		}
		for key := range base {
			if _, ok := table[key]; !ok {
				log.Printf("WARNING: locale %s is missing %q, falling back to %s", lang, key, DefaultLanguage)
			}
		}
	}
	return l, nil
}

// Languages returns the loaded language codes.
func (l *Localizer) Languages() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	langs := make([]string, 0, len(l.translations))
	for lang := range l.translations {
		langs = append(langs, lang)
	}
	return langs
}

// GetString resolves key in lang, falling back to the default language and
// finally to the key itself so a missing translation never blanks a notice.
func (l *Localizer) GetString(lang, key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if table, ok := l.translations[lang]; ok {
		if value, ok := table[key]; ok {
			return value
		}
	}
	if lang != DefaultLanguage {
		if table, ok := l.translations[DefaultLanguage]; ok {
			if value, ok := table[key]; ok {
				return value
			}
		}
	}
	return key
}
