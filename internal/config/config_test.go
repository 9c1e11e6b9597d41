package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points every lookup at a fresh temp dir and clears overrides
func isolate(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvToken, "")
	t.Setenv(EnvTimeout, "")
	t.Setenv(EnvThemeFile, "")
	t.Setenv(EnvLogLevel, "")
	return tempDir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	configDir := filepath.Join(dir, "quickanswers")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	if defaults.SaveForm != "ctrl+s" {
		t.Errorf("Default SaveForm key = %s, want ctrl+s", defaults.SaveForm)
	}
	if defaults.AddField != "ctrl+n" {
		t.Errorf("Default AddField key = %s, want ctrl+n", defaults.AddField)
	}
	if defaults.Cancel != "esc" {
		t.Errorf("Default Cancel key = %s, want esc", defaults.Cancel)
	}
	if defaults.NewLine != "shift+enter" {
		t.Errorf("Default NewLine key = %s, want shift+enter", defaults.NewLine)
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() without config file failed: %v", err)
	}

	if cfg.API.BaseURL != defaultBaseURL {
		t.Errorf("BaseURL = %s, want %s", cfg.API.BaseURL, defaultBaseURL)
	}
	if cfg.API.TimeoutSeconds != 0 {
		t.Errorf("TimeoutSeconds = %d, want 0 (no timeout)", cfg.API.TimeoutSeconds)
	}
	if cfg.KeyMappings.RemoveField != "ctrl+d" {
		t.Errorf("RemoveField = %s, want ctrl+d", cfg.KeyMappings.RemoveField)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %s, want info", cfg.Log.Level)
	}
}

func TestLoadConfigWithFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `api:
  base_url: "https://support.example.com/api/"
  token: "secret"
  timeout_seconds: 20
key_mappings:
  add_field: "ctrl+a"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with config file failed: %v", err)
	}

	if cfg.API.BaseURL != "https://support.example.com/api" {
		t.Errorf("BaseURL = %s, want trailing slash trimmed", cfg.API.BaseURL)
	}
	if cfg.API.Token != "secret" {
		t.Errorf("Token = %s, want secret", cfg.API.Token)
	}
	if cfg.API.TimeoutSeconds != 20 {
		t.Errorf("TimeoutSeconds = %d, want 20", cfg.API.TimeoutSeconds)
	}
	if cfg.KeyMappings.AddField != "ctrl+a" {
		t.Errorf("AddField = %s, want ctrl+a", cfg.KeyMappings.AddField)
	}
	// Unset values fall back to defaults
	if cfg.KeyMappings.SaveForm != "ctrl+s" {
		t.Errorf("SaveForm = %s, want ctrl+s (default)", cfg.KeyMappings.SaveForm)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "api: [not: a map")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `api:
  base_url: "https://file.example.com"
  token: "from-file"
`)
	t.Setenv(EnvBaseURL, "https://env.example.com/")
	t.Setenv(EnvToken, "from-env")
	t.Setenv(EnvTimeout, "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.API.BaseURL != "https://env.example.com" {
		t.Errorf("BaseURL = %s", cfg.API.BaseURL)
	}
	if cfg.API.Token != "from-env" {
		t.Errorf("Token = %s, want from-env", cfg.API.Token)
	}
	if cfg.API.TimeoutSeconds != 5 {
		t.Errorf("TimeoutSeconds = %d, want 5", cfg.API.TimeoutSeconds)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.API.BaseURL = "https://saved.example.com"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	path, err := Path()
	if err != nil {
		t.Fatalf("Path() failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() failed: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.API.BaseURL != "https://saved.example.com" {
		t.Errorf("BaseURL = %s", loaded.API.BaseURL)
	}
}
