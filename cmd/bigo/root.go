package main

import (
	"fmt"
	"os"
	"path/filepath"

	"bigo/internal/config"
	"bigo/internal/logging"
	"bigo/internal/paths"
	"bigo/internal/store"
	"bigo/internal/version"

	"github.com/spf13/cobra"
)

var (
	// formatFlag is the CLI --format flag value, inherited by all commands
	formatFlag string
	// verboseFlag enables debug logging
	verboseFlag bool
	// quietFlag suppresses info logging
	quietFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "bigo",
	Short: "bigo - heuristic Big-O complexity analyzer",
	Long: `bigo is a static analyzer that estimates worst-case time and space
complexity for every function in a source file. It works on lexical
structure alone, so it handles any brace- or indentation-delimited
language without needing a parser or a build.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("bigo version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "human",
		"Output format: json, human, or yaml")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false,
		"Only log warnings and errors")
}

// mustGetRepoRoot returns the repository root, which for bigo is the
// current working directory.
func mustGetRepoRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to get working directory: %v\n", err)
		os.Exit(1)
	}
	return cwd
}

// newLogger creates a logger honoring the shared --format, --verbose,
// and --quiet flags. Without a flag override the level comes from the
// logging section of .bigo/config.json; config load failures fall back
// to info here and surface later through mustLoadConfig.
func newLogger() *logging.Logger {
	logFormat := logging.HumanFormat
	if formatFlag == "json" {
		logFormat = logging.JSONFormat
	}
	level := logging.InfoLevel
	if cfg, err := config.LoadConfig(mustGetRepoRoot()); err == nil {
		level = logging.ParseLevel(cfg.Logging.Level)
	}
	if verboseFlag {
		level = logging.DebugLevel
	} else if quietFlag {
		level = logging.WarnLevel
	}
	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  level,
	})
}

// mustLoadConfig loads .bigo/config.json, falling back to defaults
// when the repo was never initialized.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openStore opens the SQLite verdict store at the repo's .bigo
// directory.
func openStore(repoRoot string, logger *logging.Logger) (*store.SQLiteStore, error) {
	return store.Open(repoRoot, logger)
}

// tokenDBPath resolves the API token store location, honoring the
// config override when one is set.
func tokenDBPath(repoRoot string, cfg *config.Config) string {
	if p := cfg.Server.Auth.TokenDBPath; p != "" {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(repoRoot, p)
	}
	return paths.TokenDBPath(repoRoot)
}
