// Package analysis estimates asymptotic time and space complexity of
// source text from surface lexical patterns. Nothing here parses code:
// function boundaries, loop nesting, recursion, and data structure use
// are detected with line-level regular expressions, so every verdict
// is an estimate with known false positives. The package is pure and
// performs no I/O except the AnalyzeFile convenience wrapper.
package analysis

import (
	"os"
	"path/filepath"
	"strings"
)

// Analyzer runs the full detection pipeline. It holds no state and is
// safe for concurrent use.
type Analyzer struct{}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// AnalyzeSpan classifies one block of text. The same span always
// yields the same verdict.
func (a *Analyzer) AnalyzeSpan(span string, family Family) Verdict {
	depth := EstimateDepth(span)
	recursive := FindRecursive(span)
	structures := FindStructures(span)
	idioms := FindIdioms(span)
	return Classify(depth, recursive, structures, idioms)
}

// AnalyzeDocument scans lines for function candidates and classifies
// each candidate's span.
func (a *Analyzer) AnalyzeDocument(lines []string, family Family) []FunctionReport {
	candidates := ScanDocument(lines, family)
	reports := make([]FunctionReport, 0, len(candidates))
	for _, c := range candidates {
		span := strings.Join(lines[c.StartLine:c.EndLine], "\n")
		reports = append(reports, FunctionReport{
			FunctionCandidate: c,
			Verdict:           a.AnalyzeSpan(span, family),
		})
	}
	return reports
}

// AnalyzeFile reads and analyzes a source file. Failures surface as a
// soft error on the report, never as a fault.
func (a *Analyzer) AnalyzeFile(path string) *DocumentReport {
	source, err := os.ReadFile(path)
	if err != nil {
		return &DocumentReport{
			Path:      path,
			Family:    DetectFamily("", path),
			Functions: []FunctionReport{},
			Error:     "failed to read file: " + err.Error(),
		}
	}
	return a.AnalyzeSource(path, source, "")
}

// AnalyzeSource analyzes in-memory source. languageID may be empty, in
// which case the family comes from the path's extension.
func (a *Analyzer) AnalyzeSource(path string, source []byte, languageID string) *DocumentReport {
	family := DetectFamily(languageID, path)
	lines := SplitLines(string(source))
	report := &DocumentReport{
		Path:      path,
		Language:  languageID,
		Family:    family,
		Functions: a.AnalyzeDocument(lines, family),
	}
	if report.Language == "" {
		report.Language = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	return report
}

// SplitLines splits source into lines, tolerating CRLF endings.
func SplitLines(source string) []string {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
