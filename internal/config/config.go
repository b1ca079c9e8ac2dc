package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete bigo configuration (v1 schema)
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Languages LanguagesConfig `json:"languages" mapstructure:"languages"`
	Scan      ScanConfig      `json:"scan" mapstructure:"scan"`
	Store     StoreConfig     `json:"store" mapstructure:"store"`
	Server    ServerConfig    `json:"server" mapstructure:"server"`
	Watch     WatchConfig     `json:"watch" mapstructure:"watch"`
	Export    ExportConfig    `json:"export" mapstructure:"export"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`
}

// LanguagesConfig controls language family resolution
type LanguagesConfig struct {
	// DefaultFamily is used when neither identifier nor extension is
	// recognized: brace, indent, or mixed
	DefaultFamily string `json:"defaultFamily" mapstructure:"defaultFamily"`

	// DeclarationsFile is the repo-relative LANGUAGES.toml path
	DeclarationsFile string `json:"declarationsFile" mapstructure:"declarationsFile"`
}

// ScanConfig controls directory scans
type ScanConfig struct {
	// Ignore lists directory names skipped during scans
	Ignore []string `json:"ignore" mapstructure:"ignore"`

	// MaxFileSizeBytes skips files larger than this
	MaxFileSizeBytes int `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
}

// StoreConfig controls verdict persistence
type StoreConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

// AuthConfig controls API token checks on the HTTP server
type AuthConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// TokenDBPath overrides the repo-relative token store location;
	// empty means .bigo/tokens.db
	TokenDBPath string `json:"tokenDbPath,omitempty" mapstructure:"tokenDbPath"`
}

// ServerConfig controls the HTTP API server
type ServerConfig struct {
	Addr string     `json:"addr" mapstructure:"addr"`
	Auth AuthConfig `json:"auth" mapstructure:"auth"`
}

// WatchConfig controls the polling watcher
type WatchConfig struct {
	IntervalMs int `json:"intervalMs" mapstructure:"intervalMs"`
	DebounceMs int `json:"debounceMs" mapstructure:"debounceMs"`
}

// ExportConfig controls report exports
type ExportConfig struct {
	Dir      string `json:"dir" mapstructure:"dir"`
	Compress bool   `json:"compress" mapstructure:"compress"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		Languages: LanguagesConfig{
			DefaultFamily:    "mixed",
			DeclarationsFile: "LANGUAGES.toml",
		},
		Scan: ScanConfig{
			Ignore:           []string{"node_modules", "vendor", ".git", "dist", "build", "__pycache__", ".bigo"},
			MaxFileSizeBytes: 1000000,
		},
		Store: StoreConfig{
			Enabled: true,
			Path:    ".bigo/bigo.db",
		},
		Server: ServerConfig{
			Addr: ":7465",
			Auth: AuthConfig{
				Enabled: false,
			},
		},
		Watch: WatchConfig{
			IntervalMs: 1000,
			DebounceMs: 300,
		},
		Export: ExportConfig{
			Dir:      ".bigo/exports",
			Compress: false,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .bigo/config.json
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("version", 1)
	v.SetDefault("repoRoot", ".")

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".bigo"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	// Unmarshal into config struct
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to .bigo/config.json
func (c *Config) Save(repoRoot string) error {
	bigoDir := filepath.Join(repoRoot, ".bigo")
	if err := os.MkdirAll(bigoDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(bigoDir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}

	switch c.Languages.DefaultFamily {
	case "brace", "indent", "mixed":
	default:
		return &ConfigError{Field: "languages.defaultFamily", Message: "must be brace, indent, or mixed"}
	}

	if c.Watch.IntervalMs <= 0 {
		return &ConfigError{Field: "watch.intervalMs", Message: "must be positive"}
	}
	if c.Watch.DebounceMs < 0 {
		return &ConfigError{Field: "watch.debounceMs", Message: "must not be negative"}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
