package main

import (
	"fmt"

	"bigo/internal/export"

	"github.com/spf13/cobra"
)

var (
	exportOut      string
	exportCompress bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored verdicts as JSONL",
	Long: `Export every stored verdict to a JSON Lines file. The first line is
a manifest with a unique export ID and record count; each following
line is one verdict record. With --compress the file is zstd-framed.

Examples:
  bigo export
  bigo export --out reports/ --compress`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output directory, or - for stdout (default from config)")
	exportCmd.Flags().BoolVar(&exportCompress, "compress", false, "Compress the export with zstd")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)

	st, err := openStore(repoRoot, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	records, err := st.List()
	if err != nil {
		return fmt.Errorf("failed to list verdicts: %w", err)
	}

	exporter := export.NewExporter(logger)

	// --out - streams an uncompressed export to stdout.
	if exportOut == "-" {
		_, err := exporter.WriteTo(cmd.OutOrStdout(), records)
		return err
	}

	opts := export.Options{
		Dir:      cfg.Export.Dir,
		Compress: cfg.Export.Compress,
	}
	if exportOut != "" {
		opts.Dir = exportOut
	}
	if exportCompress {
		opts.Compress = true
	}

	result, err := exporter.Export(records, opts)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("Exported %d records to %s\n", result.Manifest.RecordCount, result.Path)
	return nil
}
