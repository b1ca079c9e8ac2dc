package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Languages.DefaultFamily != "mixed" {
		t.Errorf("DefaultFamily = %q, want mixed", cfg.Languages.DefaultFamily)
	}
	if cfg.Languages.DeclarationsFile != "LANGUAGES.toml" {
		t.Errorf("DeclarationsFile = %q, want LANGUAGES.toml", cfg.Languages.DeclarationsFile)
	}
	if cfg.Server.Addr != ":7465" {
		t.Errorf("Server.Addr = %q, want :7465", cfg.Server.Addr)
	}
	if cfg.Server.Auth.Enabled {
		t.Error("auth should be disabled by default")
	}
	if !cfg.Store.Enabled {
		t.Error("store should be enabled by default")
	}
	if cfg.Scan.MaxFileSizeBytes <= 0 {
		t.Error("MaxFileSizeBytes should be positive")
	}

	found := false
	for _, dir := range cfg.Scan.Ignore {
		if dir == ".bigo" {
			found = true
		}
	}
	if !found {
		t.Error("scan ignore list should contain .bigo")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// Missing config falls back to defaults.
	if cfg.Server.Addr != ":7465" {
		t.Errorf("Server.Addr = %q, want default :7465", cfg.Server.Addr)
	}
	if cfg.Watch.IntervalMs != 1000 {
		t.Errorf("Watch.IntervalMs = %d, want default 1000", cfg.Watch.IntervalMs)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	bigoDir := filepath.Join(tmpDir, ".bigo")
	if err := os.MkdirAll(bigoDir, 0755); err != nil {
		t.Fatalf("failed to create .bigo dir: %v", err)
	}

	configJSON := `{
		"version": 1,
		"server": {"addr": ":9000", "auth": {"enabled": true}},
		"scan": {"maxFileSizeBytes": 500}
	}`
	if err := os.WriteFile(filepath.Join(bigoDir, "config.json"), []byte(configJSON), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q, want :9000", cfg.Server.Addr)
	}
	if !cfg.Server.Auth.Enabled {
		t.Error("auth should be enabled per file")
	}
	if cfg.Scan.MaxFileSizeBytes != 500 {
		t.Errorf("MaxFileSizeBytes = %d, want 500", cfg.Scan.MaxFileSizeBytes)
	}

	// Fields absent from the file keep their defaults.
	if cfg.Languages.DefaultFamily != "mixed" {
		t.Errorf("DefaultFamily = %q, want default mixed", cfg.Languages.DefaultFamily)
	}
	if cfg.Watch.DebounceMs != 300 {
		t.Errorf("Watch.DebounceMs = %d, want default 300", cfg.Watch.DebounceMs)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	bigoDir := filepath.Join(tmpDir, ".bigo")
	if err := os.MkdirAll(bigoDir, 0755); err != nil {
		t.Fatalf("failed to create .bigo dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(bigoDir, "config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadConfig(tmpDir); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Server.Addr = ":8123"
	cfg.Store.Enabled = false
	if err := cfg.Save(tmpDir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Server.Addr != ":8123" {
		t.Errorf("Server.Addr = %q, want :8123", loaded.Server.Addr)
	}
	if loaded.Store.Enabled {
		t.Error("Store.Enabled should round-trip as false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"valid default", func(c *Config) {}, ""},
		{"unsupported version", func(c *Config) { c.Version = 5 }, "version"},
		{"unknown family", func(c *Config) { c.Languages.DefaultFamily = "curly" }, "languages.defaultFamily"},
		{"zero interval", func(c *Config) { c.Watch.IntervalMs = 0 }, "watch.intervalMs"},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMs = -1 }, "watch.debounceMs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}
