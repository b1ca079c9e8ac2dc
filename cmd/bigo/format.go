package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"bigo/internal/analysis"
	"bigo/internal/policy"
	"bigo/internal/store"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
	FormatYAML  OutputFormat = "yaml"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatYAML formats the response as YAML
func formatYAML(resp interface{}) (string, error) {
	data, err := yaml.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *analysis.DocumentReport:
		return formatReportHuman(v), nil
	case *FunctionsResponseCLI:
		return formatFunctionsHuman(v), nil
	case *ScanResponseCLI:
		return formatScanHuman(v), nil
	case *CheckResponseCLI:
		return formatCheckHuman(v), nil
	case *CacheStatsCLI:
		return formatCacheStatsHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

// FunctionsResponseCLI is the payload for the functions command.
type FunctionsResponseCLI struct {
	Path      string                       `json:"path"`
	Family    analysis.Family              `json:"family"`
	Functions []analysis.FunctionCandidate `json:"functions"`
}

// ScanResponseCLI is the payload for the scan command.
type ScanResponseCLI struct {
	Root       string                   `json:"root"`
	Files      int                      `json:"files"`
	Functions  int                      `json:"functions"`
	TimeCounts map[analysis.Label]int   `json:"timeCounts"`
	Reports    []analysis.DocumentReport `json:"reports,omitempty"`
	Stored     int                      `json:"stored,omitempty"`
}

// CheckResponseCLI is the payload for the check command.
type CheckResponseCLI struct {
	Records    int                `json:"records"`
	Rules      int                `json:"rules"`
	Violations []policy.Violation `json:"violations"`
}

// CacheStatsCLI is the payload for the cache stats command.
type CacheStatsCLI struct {
	Stats store.Stats `json:"stats"`
}

func formatReportHuman(report *analysis.DocumentReport) string {
	var b strings.Builder

	header := report.Path
	if header == "" {
		header = "(inline source)"
	}
	b.WriteString(fmt.Sprintf("%s [%s]\n", header, report.Family))
	b.WriteString(strings.Repeat("=", 60) + "\n")

	if report.Error != "" {
		b.WriteString(fmt.Sprintf("! %s\n", report.Error))
	}
	if len(report.Functions) == 0 {
		b.WriteString("No functions detected.\n")
		return b.String()
	}

	for _, fn := range report.Functions {
		b.WriteString(fmt.Sprintf("  %-30s L%-5d time %-10s space %s\n",
			fn.Name, fn.StartLine+1, fn.Time, fn.Space))
	}
	return b.String()
}

func formatFunctionsHuman(resp *FunctionsResponseCLI) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s [%s]\n", resp.Path, resp.Family))
	b.WriteString(strings.Repeat("=", 60) + "\n")
	if len(resp.Functions) == 0 {
		b.WriteString("No functions detected.\n")
		return b.String()
	}
	for _, fn := range resp.Functions {
		b.WriteString(fmt.Sprintf("  %-30s lines %d-%d\n", fn.Name, fn.StartLine+1, fn.EndLine+1))
	}
	return b.String()
}

func formatScanHuman(resp *ScanResponseCLI) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Scanned %s\n", resp.Root))
	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString(fmt.Sprintf("Files: %d, Functions: %d\n\n", resp.Files, resp.Functions))

	if len(resp.TimeCounts) > 0 {
		b.WriteString("Time complexity distribution:\n")
		labels := make([]analysis.Label, 0, len(resp.TimeCounts))
		for label := range resp.TimeCounts {
			labels = append(labels, label)
		}
		sort.Slice(labels, func(i, j int) bool {
			return policy.Rank(labels[i]) < policy.Rank(labels[j])
		})
		for _, label := range labels {
			b.WriteString(fmt.Sprintf("  %-12s %d\n", label, resp.TimeCounts[label]))
		}
	}
	if resp.Stored > 0 {
		b.WriteString(fmt.Sprintf("\nStored %d verdicts.\n", resp.Stored))
	}
	return b.String()
}

func formatCheckHuman(resp *CheckResponseCLI) string {
	var b strings.Builder

	b.WriteString("Policy Check\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString(fmt.Sprintf("Records: %d, Rules: %d\n\n", resp.Records, resp.Rules))

	if len(resp.Violations) == 0 {
		b.WriteString("✓ All complexity budgets satisfied.\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("✗ %d violation(s):\n", len(resp.Violations)))
	for _, v := range resp.Violations {
		b.WriteString(fmt.Sprintf("  %s\n", v.String()))
	}
	return b.String()
}

func formatCacheStatsHuman(resp *CacheStatsCLI) string {
	var b strings.Builder

	b.WriteString("Verdict Store\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString(fmt.Sprintf("Path: %s\n", resp.Stats.Path))
	b.WriteString(fmt.Sprintf("Records: %d\n", resp.Stats.Records))
	b.WriteString(fmt.Sprintf("Documents: %d\n", resp.Stats.Documents))
	b.WriteString(fmt.Sprintf("Size: %s\n", formatBytes(resp.Stats.SizeBytes)))
	return b.String()
}

// formatBytes formats byte size in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
