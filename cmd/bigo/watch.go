package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bigo/internal/analysis"
	"bigo/internal/watcher"

	"github.com/spf13/cobra"
)

var watchStore bool

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-analyze files as they change",
	Long: `Watch a directory tree for source file changes and re-analyze each
changed file, printing the new verdicts. Polling interval and debounce
come from the watch section of .bigo/config.json.

Examples:
  bigo watch
  bigo watch src/ --store`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchStore, "store", false, "Persist verdicts on every change")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)

	root := repoRoot
	if len(args) == 1 {
		root = args[0]
	}

	wcfg := watcher.DefaultConfig()
	if cfg.Watch.IntervalMs > 0 {
		wcfg.PollInterval = time.Duration(cfg.Watch.IntervalMs) * time.Millisecond
	}
	if cfg.Watch.DebounceMs > 0 {
		wcfg.Debounce = time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	}
	if len(cfg.Scan.Ignore) > 0 {
		wcfg.IgnoreDirs = cfg.Scan.Ignore
	}
	if cfg.Scan.MaxFileSizeBytes > 0 {
		wcfg.MaxFileSizeBytes = int64(cfg.Scan.MaxFileSizeBytes)
	}

	analyzer := analysis.NewAnalyzer()
	handler := func(events []watcher.Event) {
		for _, ev := range events {
			evLog := logger.With(map[string]interface{}{"path": ev.Path})

			if ev.Type == watcher.EventDelete {
				fmt.Printf("deleted: %s\n", ev.Path)
				continue
			}

			report := analyzer.AnalyzeFile(ev.Path)
			if report.Error != "" {
				evLog.Warn("Analysis failed", map[string]interface{}{
					"error": report.Error,
				})
				continue
			}

			out, err := FormatResponse(report, OutputFormat(formatFlag))
			if err != nil {
				evLog.Error("Format failed", map[string]interface{}{
					"error": err.Error(),
				})
				continue
			}
			fmt.Println(out)

			if watchStore {
				if err := persistReport(report, evLog); err != nil {
					evLog.Error("Store failed", map[string]interface{}{
						"error": err.Error(),
					})
				}
			}
		}
	}

	w := watcher.New(root, wcfg, logger, handler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Stop()

	fmt.Printf("Watching %s (%d files). Press Ctrl+C to stop.\n", root, w.TrackedFiles())

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	sig := <-shutdown

	logger.Info("Watch stopped", map[string]interface{}{
		"signal": sig.String(),
	})
	return nil
}
