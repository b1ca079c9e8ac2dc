package main

import (
	"fmt"
	"os"

	"bigo/internal/analysis"
	"bigo/internal/lang"

	"github.com/spf13/cobra"
)

var functionsLanguage string

var functionsCmd = &cobra.Command{
	Use:   "functions <file>",
	Short: "List function boundaries in a file",
	Long: `Scan a source file and list every detected function or class
boundary without computing complexity verdicts. This is the surface
editor integrations use to place per-function annotations.

Examples:
  bigo functions src/search.go
  bigo functions src/search.py --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runFunctions,
}

func init() {
	functionsCmd.Flags().StringVar(&functionsLanguage, "language", "", "Language identifier (inferred from extension when empty)")
	rootCmd.AddCommand(functionsCmd)
}

func runFunctions(cmd *cobra.Command, args []string) error {
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)

	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	table, err := lang.LoadTable(repoRoot, cfg.Languages.DeclarationsFile)
	if err != nil {
		return fmt.Errorf("failed to load language declarations: %w", err)
	}
	family := table.Resolve(functionsLanguage, path)
	candidates := analysis.ScanDocument(analysis.SplitLines(string(source)), family)

	resp := &FunctionsResponseCLI{
		Path:      path,
		Family:    family,
		Functions: candidates,
	}

	out, err := FormatResponse(resp, OutputFormat(formatFlag))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
