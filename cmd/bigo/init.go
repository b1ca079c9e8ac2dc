package main

import (
	"fmt"
	"os"
	"path/filepath"

	"bigo/internal/config"
	"bigo/internal/errors"
	"bigo/internal/lang"
	"bigo/internal/paths"

	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize bigo configuration",
	Long:  "Creates a .bigo/ directory with default configuration and an example LANGUAGES.toml in the current repository root",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Force reinitialization (removes existing .bigo directory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.NewBigoError(errors.InternalError, "Failed to get current directory", err, nil, nil)
	}

	bigoDir := paths.BigoDir(cwd)
	if _, statErr := os.Stat(bigoDir); statErr == nil {
		if !initForce {
			// Idempotent behavior: already initialized is success (CI-friendly)
			fmt.Println("bigo already initialized.")
			fmt.Printf("Configuration at: %s\n", filepath.Join(bigoDir, "config.json"))
			fmt.Println("\nRun 'bigo init --force' to reinitialize.")
			return nil
		}
		if removeErr := os.RemoveAll(bigoDir); removeErr != nil {
			return errors.NewBigoError(errors.InternalError, "Failed to remove existing .bigo directory", removeErr, nil, nil)
		}
	}

	if mkdirErr := os.MkdirAll(bigoDir, 0o755); mkdirErr != nil {
		return errors.NewBigoError(errors.InternalError, "Failed to create .bigo directory", mkdirErr, nil, nil)
	}

	cfg := config.DefaultConfig()
	cfg.RepoRoot = "."
	if err := cfg.Save(cwd); err != nil {
		return errors.NewBigoError(errors.ConfigInvalid, "Failed to write config file", err, nil, nil)
	}

	languagesPath := filepath.Join(cwd, cfg.Languages.DeclarationsFile)
	if _, err := os.Stat(languagesPath); os.IsNotExist(err) {
		if err := lang.CreateExampleLanguagesFile(languagesPath); err != nil {
			return errors.NewBigoError(errors.LanguagesInvalid, "Failed to write example languages file", err, nil, nil)
		}
	}

	fmt.Println("bigo initialized successfully!")
	fmt.Printf("Configuration written to: %s\n", filepath.Join(bigoDir, "config.json"))
	fmt.Printf("Language overrides at: %s\n", languagesPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'bigo scan --store' to analyze the repository")
	fmt.Println("  2. Run 'bigo check' to gate against .bigo/policy.toml")

	return nil
}
