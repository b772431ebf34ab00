package view

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Settings are the persisted UI preferences. They are loaded once at startup,
// injected into the presentation layer, and saved on every change.
type Settings struct {
	Mode    string `json:"mode"`    // dark|light|system
	Palette string `json:"palette"` // accent palette name
	DevMode bool   `json:"devMode"` // enables seed/clear actions
}

// DefaultSettings returns the out-of-the-box preferences.
func DefaultSettings() Settings {
	return Settings{Mode: "system", Palette: "indigo"}
}

// SettingsStore persists Settings as a single JSON file.
type SettingsStore struct {
	path string
}

// NewSettingsStore creates a store backed by the given file path.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// Load reads the settings file; a missing file yields the defaults.
func (s *SettingsStore) Load() (Settings, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return DefaultSettings(), fmt.Errorf("read settings: %w", err)
	}
	settings := DefaultSettings()
	if err := json.Unmarshal(b, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("json unmarshal: %w", err)
	}
	return settings, nil
}

// Save writes the settings file, creating parent directories as needed.
func (s *SettingsStore) Save(settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	b, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
