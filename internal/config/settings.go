package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"fintrack/internal/core"
)

const DefaultSettingsFile = "config.json"

// Settings is the persisted settings document shown to and edited by the user.
type Settings struct {
	FileName       string `json:"file_name"`
	Theme          string `json:"theme"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	Title          string `json:"title"`
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// DefaultSettings returns the document written on first run.
func DefaultSettings() Settings {
	return Settings{
		FileName:       "finance_data.csv",
		Theme:          "light",
		PrimaryColor:   "#4CAF50",
		SecondaryColor: "#f44336",
		Title:          "Personal Finance Tracker",
	}
}

// LoadSettings reads the settings document at path. A missing file is
// created with DefaultSettings. A file that is not valid JSON yields an
// error wrapping core.ErrConfigCorrupt.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s := DefaultSettings()
		if err := SaveSettings(path, s); err != nil {
			return s, err
		}
		return s, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
	}

	// Keys absent from the document keep their defaults; explicit values,
	// empty strings included, are kept as written.
	s := DefaultSettings()
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("%w: %s: %v", core.ErrConfigCorrupt, path, err)
	}
	return s, nil
}

// SaveSettings writes the document as indented JSON, replacing the file.
func SaveSettings(path string, s Settings) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}

// Validate checks the values a user can edit by hand.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.FileName) == "" {
		return errors.New("file_name cannot be empty")
	}
	if !hexColor.MatchString(s.PrimaryColor) {
		return fmt.Errorf("primary_color %q is not a hex color", s.PrimaryColor)
	}
	if !hexColor.MatchString(s.SecondaryColor) {
		return fmt.Errorf("secondary_color %q is not a hex color", s.SecondaryColor)
	}
	return nil
}

// Set updates one field by its JSON key.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "file_name":
		s.FileName = value
	case "theme":
		s.Theme = value
	case "primary_color":
		s.PrimaryColor = value
	case "secondary_color":
		s.SecondaryColor = value
	case "title":
		s.Title = value
	default:
		return fmt.Errorf("unknown settings key %q", key)
	}
	return nil
}

// Keys lists the settings keys in document order.
func Keys() []string {
	return []string{"file_name", "theme", "primary_color", "secondary_color", "title"}
}

// Get returns a field by its JSON key.
func (s Settings) Get(key string) (string, bool) {
	switch key {
	case "file_name":
		return s.FileName, true
	case "theme":
		return s.Theme, true
	case "primary_color":
		return s.PrimaryColor, true
	case "secondary_color":
		return s.SecondaryColor, true
	case "title":
		return s.Title, true
	}
	return "", false
}
