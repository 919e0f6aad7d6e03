package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettingsValid(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Errorf("default settings invalid: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if settings.TagNamespace != "cwp_" {
		t.Errorf("TagNamespace = %q, want default %q", settings.TagNamespace, "cwp_")
	}
	if settings.LookupMaxAttempts != 6 {
		t.Errorf("LookupMaxAttempts = %d, want default 6", settings.LookupMaxAttempts)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "settings.json")

	settings := DefaultSettings()
	settings.ServiceBaseURL = "http://localhost:5000/ws/2"
	settings.RequestsPerSecond = 25
	settings.ModifyTags = false

	if err := settings.Save(path); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.ServiceBaseURL != settings.ServiceBaseURL {
		t.Errorf("ServiceBaseURL = %q, want %q", loaded.ServiceBaseURL, settings.ServiceBaseURL)
	}
	if loaded.RequestsPerSecond != 25 {
		t.Errorf("RequestsPerSecond = %v, want 25", loaded.RequestsPerSecond)
	}
	if loaded.ModifyTags {
		t.Error("ModifyTags = true, want false")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"requests_per_second": 1}`), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if settings.RequestsPerSecond != 1 {
		t.Errorf("RequestsPerSecond = %v, want 1", settings.RequestsPerSecond)
	}
	// Unspecified keys fall back to defaults.
	if settings.UserAgent != "workparts" {
		t.Errorf("UserAgent = %q, want default", settings.UserAgent)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"zero rate", `{"requests_per_second": 0}`},
		{"zero attempts", `{"lookup_max_attempts": 0}`},
		{"zero album concurrency", `{"max_concurrent_albums": 0}`},
		{"empty base url", `{"service_base_url": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			if err := os.WriteFile(path, []byte(tt.json), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load succeeded on invalid settings")
			}
		})
	}
}
