package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"bigo/internal/analysis"
	"bigo/internal/lang"
	"bigo/internal/logging"
	"bigo/internal/policy"
	"bigo/internal/store"

	"github.com/spf13/cobra"
)

var (
	analyzeLanguage string
	analyzeStore    bool
	analyzeSort     string
	analyzeLimit    int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Estimate complexity for every function in a file",
	Long: `Analyze a source file and print a worst-case time and space
complexity estimate for every detected function.

Examples:
  bigo analyze src/search.go
  bigo analyze src/search.py --language python --format json
  bigo analyze src/search.go --sort time --limit 10
  bigo analyze src/search.go --store`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeLanguage, "language", "", "Language identifier (inferred from extension when empty)")
	analyzeCmd.Flags().BoolVar(&analyzeStore, "store", false, "Persist verdicts to the SQLite store")
	analyzeCmd.Flags().StringVar(&analyzeSort, "sort", "line", "Sort order: line, time, or name")
	analyzeCmd.Flags().IntVar(&analyzeLimit, "limit", 0, "Limit output to the first N functions (0 = all)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger := newLogger()
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
	family := table.Resolve(analyzeLanguage, path)

	analyzer := analysis.NewAnalyzer()
	lines := analysis.SplitLines(string(source))
	report := &analysis.DocumentReport{
		Path:      path,
		Language:  analyzeLanguage,
		Family:    family,
		Functions: analyzer.AnalyzeDocument(lines, family),
	}

	sortFunctions(report.Functions, analyzeSort)
	if analyzeLimit > 0 && len(report.Functions) > analyzeLimit {
		report.Functions = report.Functions[:analyzeLimit]
	}

	if analyzeStore {
		if err := persistReport(report, logger); err != nil {
			return err
		}
	}

	out, err := FormatResponse(report, OutputFormat(formatFlag))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// sortFunctions reorders the reports in place. "time" sorts worst
// first, ties broken by line.
func sortFunctions(fns []analysis.FunctionReport, order string) {
	switch order {
	case "time":
		sort.SliceStable(fns, func(i, j int) bool {
			ri, rj := policy.Rank(fns[i].Time), policy.Rank(fns[j].Time)
			if ri != rj {
				return ri > rj
			}
			return fns[i].StartLine < fns[j].StartLine
		})
	case "name":
		sort.SliceStable(fns, func(i, j int) bool {
			return fns[i].Name < fns[j].Name
		})
	default:
		// scanner output is already in line order
	}
}

// persistReport writes each function verdict to the SQLite store.
func persistReport(report *analysis.DocumentReport, logger *logging.Logger) error {
	repoRoot := mustGetRepoRoot()
	st, err := openStore(repoRoot, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	recs := recordsFromReport(report)
	if err := st.PutBatch(recs); err != nil {
		return fmt.Errorf("failed to store verdicts: %w", err)
	}
	logger.Info("Stored verdicts", map[string]interface{}{
		"doc":   report.Path,
		"count": len(recs),
	})
	return nil
}

// recordsFromReport converts a document report into store records.
func recordsFromReport(report *analysis.DocumentReport) []store.Record {
	now := time.Now().UTC()
	recs := make([]store.Record, 0, len(report.Functions))
	for _, fn := range report.Functions {
		recs = append(recs, store.Record{
			Key: store.Key{
				Doc:       report.Path,
				Name:      fn.Name,
				StartLine: fn.StartLine,
			},
			Verdict:    fn.Verdict,
			CapturedAt: now,
		})
	}
	return recs
}
