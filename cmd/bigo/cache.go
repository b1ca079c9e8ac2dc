package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the verdict store",
	Long: `Inspect or clear the SQLite store that holds analysis verdicts.

Examples:
  bigo cache stats
  bigo cache clear`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show verdict store statistics",
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored verdicts",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	repoRoot := mustGetRepoRoot()

	st, err := openStore(repoRoot, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	stats, err := st.Stats()
	if err != nil {
		return fmt.Errorf("failed to read store stats: %w", err)
	}

	out, err := FormatResponse(&CacheStatsCLI{Stats: stats}, OutputFormat(formatFlag))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	repoRoot := mustGetRepoRoot()

	st, err := openStore(repoRoot, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	if err := st.Purge(); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}

	fmt.Println("Verdict store cleared.")
	return nil
}
