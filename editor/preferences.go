package editor

import (
	"encoding/json"
	"fmt"
)

const (
	preferencesScope = "preferences"
	preferencesField = "editor"
)

// Preferences are the reader-facing typography settings the editor persists
// across sessions.
type Preferences struct {
	FontSize   int     `json:"fontSize"`
	FontFamily string  `json:"fontFamily"`
	LineHeight float64 `json:"lineHeight"`
}

// DefaultPreferences returns the settings used before the user changes any.
func DefaultPreferences() Preferences {
	return Preferences{
		FontSize:   16,
		FontFamily: "serif",
		LineHeight: 1.6,
	}
}

// LoadPreferences reads persisted preferences, falling back to defaults when
// nothing has been saved yet.
func LoadPreferences(store Store) (Preferences, error) {
	raw, ok, err := store.Get(preferencesScope, preferencesField)
	if err != nil {
		return Preferences{}, fmt.Errorf("editor preferences load: %w", err)
	}
	if !ok {
		return DefaultPreferences(), nil
	}
	var prefs Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return Preferences{}, fmt.Errorf("editor preferences decode: %w", err)
	}
	return prefs, nil
}

// SavePreferences persists the preferences through the store.
func SavePreferences(store Store, prefs Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("editor preferences encode: %w", err)
	}
	if err := store.Set(preferencesScope, preferencesField, string(raw)); err != nil {
		return fmt.Errorf("editor preferences save: %w", err)
	}
	return nil
}
