package main

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"bigo/internal/analysis"
	"bigo/internal/store"

	"github.com/spf13/cobra"
)

var (
	scanStore   bool
	scanReports bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Analyze every supported file under a directory",
	Long: `Walk a directory tree, analyze every file with a recognized source
extension, and print an aggregate complexity distribution. Directories
listed in the scan ignore list and files over the size cap are skipped.

Examples:
  bigo scan
  bigo scan src/ --store
  bigo scan --format json --full`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanStore, "store", false, "Persist verdicts to the SQLite store")
	scanCmd.Flags().BoolVar(&scanReports, "full", false, "Include per-file reports in the output")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)

	root := repoRoot
	if len(args) == 1 {
		root = args[0]
	}

	ignored := make(map[string]bool, len(cfg.Scan.Ignore))
	for _, dir := range cfg.Scan.Ignore {
		ignored[dir] = true
	}

	analyzer := analysis.NewAnalyzer()
	resp := &ScanResponseCLI{
		Root:       root,
		TimeCounts: make(map[analysis.Label]int),
	}
	var records []store.Record

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Skipping unreadable entry", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if ignored[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !analysis.KnownExtension(path) {
			return nil
		}
		if info, err := d.Info(); err == nil && cfg.Scan.MaxFileSizeBytes > 0 &&
			info.Size() > int64(cfg.Scan.MaxFileSizeBytes) {
			logger.Debug("Skipping oversized file", map[string]interface{}{
				"path": path,
				"size": info.Size(),
			})
			return nil
		}

		report := analyzer.AnalyzeFile(path)
		if report.Error != "" {
			logger.Warn("Analysis failed", map[string]interface{}{
				"path":  path,
				"error": report.Error,
			})
			return nil
		}

		resp.Files++
		resp.Functions += len(report.Functions)
		for _, fn := range report.Functions {
			resp.TimeCounts[fn.Time]++
		}
		if scanReports {
			resp.Reports = append(resp.Reports, *report)
		}
		if scanStore {
			records = append(records, recordsFromReport(report)...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if scanStore && len(records) > 0 {
		st, err := openStore(repoRoot, logger)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer st.Close()
		if err := st.PutBatch(records); err != nil {
			return fmt.Errorf("failed to store verdicts: %w", err)
		}
		resp.Stored = len(records)
	}

	out, err := FormatResponse(resp, OutputFormat(formatFlag))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
