package main

import (
	"fmt"
	"os"

	"bigo/internal/policy"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check stored verdicts against complexity budgets",
	Long: `Evaluate every stored verdict against the rules in .bigo/policy.toml
and report budget violations. Exits non-zero when any violation is
found, which makes this command usable as a CI gate.

Run 'bigo scan --store' first to populate the verdict store.

Examples:
  bigo check
  bigo check --format json`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	repoRoot := mustGetRepoRoot()

	pol, err := policy.Load(repoRoot)
	if err != nil {
		return fmt.Errorf("failed to load policy: %w", err)
	}

	st, err := openStore(repoRoot, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	records, err := st.List()
	if err != nil {
		return fmt.Errorf("failed to list verdicts: %w", err)
	}

	violations := pol.Evaluate(records)
	resp := &CheckResponseCLI{
		Records:    len(records),
		Rules:      len(pol.Rules),
		Violations: violations,
	}

	out, err := FormatResponse(resp, OutputFormat(formatFlag))
	if err != nil {
		return err
	}
	fmt.Println(out)

	if len(violations) > 0 {
		os.Exit(1)
	}
	return nil
}
