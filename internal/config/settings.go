package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings holds all configuration options.
type Settings struct {
	// Web service settings
	ServiceBaseURL    string  `json:"service_base_url"`
	UserAgent         string  `json:"user_agent"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	LookupTimeout     float64 `json:"lookup_timeout_seconds"`

	// Retry settings
	LookupMaxAttempts    int     `json:"lookup_max_attempts"`
	RetryInitialCooldown float64 `json:"retry_initial_cooldown_seconds"`
	RetryMaxCooldown     float64 `json:"retry_max_cooldown_seconds"`

	// Concurrency settings
	MaxConcurrentAlbums int `json:"max_concurrent_albums"`
	MaxConcurrentTracks int `json:"max_concurrent_tracks"`

	// Tag settings
	TagNamespace string `json:"tag_namespace"`
	ModifyTags   bool   `json:"modify_tags"`

	// Report settings
	WriteReport bool   `json:"write_report"`
	ReportDir   string `json:"report_dir"`
}

// DefaultSettings returns settings with default values.
//
// The request rate defaults to 100/sec, far above what the public
// MusicBrainz servers allow; point ServiceBaseURL at a local mirror before
// relying on it.
func DefaultSettings() *Settings {
	return &Settings{
		ServiceBaseURL:    "https://musicbrainz.org/ws/2",
		UserAgent:         "workparts",
		RequestsPerSecond: 100,
		LookupTimeout:     30,

		LookupMaxAttempts:    6,
		RetryInitialCooldown: 0.25,
		RetryMaxCooldown:     5.0,

		MaxConcurrentAlbums: 1,
		MaxConcurrentTracks: 10,

		TagNamespace: "cwp_",
		ModifyTags:   true,

		WriteReport: false,
		ReportDir:   "",
	}
}

// Load reads settings from a JSON file.
//
// A missing file is not an error: defaults are returned so the tool works
// without a config file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings the resolver cannot run with.
func (s *Settings) Validate() error {
	if s.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive, got %v", s.RequestsPerSecond)
	}
	if s.LookupMaxAttempts < 1 {
		return fmt.Errorf("lookup_max_attempts must be at least 1, got %d", s.LookupMaxAttempts)
	}
	if s.MaxConcurrentAlbums < 1 || s.MaxConcurrentTracks < 1 {
		return fmt.Errorf("concurrency limits must be at least 1")
	}
	if s.ServiceBaseURL == "" {
		return fmt.Errorf("service_base_url must not be empty")
	}
	return nil
}

// DefaultConfigPath returns the default location of the config file.
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "workparts.json"
	}
	return filepath.Join(configDir, "workparts", "settings.json")
}
