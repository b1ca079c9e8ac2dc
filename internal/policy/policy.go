// Package policy evaluates stored complexity verdicts against
// per-path budgets declared in .bigo/policy.toml. The label ordering
// used for budget comparison lives here, not in the analysis engine:
// the engine only produces labels and models no relation between them.
package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"bigo/internal/analysis"
	"bigo/internal/store"
)

// PolicyFile is the repo-relative path of the budget declarations.
const PolicyFile = ".bigo/policy.toml"

// Rule is one [[rule]] entry. The first rule whose glob matches a
// record's document wins; later rules are not consulted.
type Rule struct {
	// PathGlob selects documents, doublestar syntax (e.g. "src/**/*.ts")
	PathGlob string `toml:"path_glob"`

	// MaxTime is the highest acceptable time label, empty = no limit
	MaxTime string `toml:"max_time,omitempty"`

	// MaxSpace is the highest acceptable space label, empty = no limit
	MaxSpace string `toml:"max_space,omitempty"`
}

// File is the root structure of policy.toml.
type File struct {
	Version int    `toml:"version"`
	Rules   []Rule `toml:"rule"`
}

// Violation reports one record that exceeded its budget.
type Violation struct {
	Doc       string         `json:"doc"`
	Name      string         `json:"name"`
	StartLine int            `json:"startLine"`
	Dimension string         `json:"dimension"` // "time" or "space"
	Actual    analysis.Label `json:"actual"`
	Limit     analysis.Label `json:"limit"`
	PathGlob  string         `json:"pathGlob"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d %s: %s complexity %s exceeds budget %s (rule %q)",
		v.Doc, v.StartLine, v.Name, v.Dimension, v.Actual, v.Limit, v.PathGlob)
}

// exponentialRank leaves headroom above it so polynomial ranks built
// from arbitrary exponents never collide with O(2^n).
const exponentialRank = 1 << 20

var baseRank = map[analysis.Label]int{
	analysis.Constant:     0,
	analysis.Logarithmic:  1,
	analysis.Linear:       2,
	analysis.Linearithmic: 3,
	analysis.Quadratic:    4,
	analysis.Exponential:  exponentialRank,
}

// Rank orders labels for budget comparison: O(1) < O(log n) < O(n) <
// O(n log n) < O(n^2) < O(n^k) < O(2^n). Unknown labels rank above
// everything so a malformed label never slips under a budget.
func Rank(label analysis.Label) int {
	if r, ok := baseRank[label]; ok {
		return r
	}
	var k int
	if _, err := fmt.Sscanf(string(label), "O(n^%d)", &k); err == nil && k > 2 {
		return 2 + k
	}
	return exponentialRank + 1
}

// ValidLabel reports whether a label belongs to the closed set the
// classifier can produce.
func ValidLabel(label analysis.Label) bool {
	if _, ok := baseRank[label]; ok {
		return true
	}
	var k int
	_, err := fmt.Sscanf(string(label), "O(n^%d)", &k)
	return err == nil && k > 2
}

// Load reads and validates policy.toml under repoRoot. A missing file
// yields an empty policy, not an error.
func Load(repoRoot string) (*File, error) {
	path := filepath.Join(repoRoot, PolicyFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{Version: 1}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", PolicyFile, err)
	}
	return Parse(data)
}

// Parse decodes and validates policy declarations.
func Parse(data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse policy.toml: %w", err)
	}
	if f.Version == 0 {
		f.Version = 1
	}
	for i, r := range f.Rules {
		if err := validateRule(i, r); err != nil {
			return nil, err
		}
	}
	return &f, nil
}

func validateRule(index int, r Rule) error {
	if strings.TrimSpace(r.PathGlob) == "" {
		return fmt.Errorf("rule[%d]: missing required 'path_glob' field", index)
	}
	if !doublestar.ValidatePattern(r.PathGlob) {
		return fmt.Errorf("rule[%d]: invalid glob %q", index, r.PathGlob)
	}
	if r.MaxTime == "" && r.MaxSpace == "" {
		return fmt.Errorf("rule[%d] %q: needs at least one of 'max_time' or 'max_space'", index, r.PathGlob)
	}
	if r.MaxTime != "" && !ValidLabel(analysis.Label(r.MaxTime)) {
		return fmt.Errorf("rule[%d] %q: unknown max_time label %q", index, r.PathGlob, r.MaxTime)
	}
	if r.MaxSpace != "" && !ValidLabel(analysis.Label(r.MaxSpace)) {
		return fmt.Errorf("rule[%d] %q: unknown max_space label %q", index, r.PathGlob, r.MaxSpace)
	}
	return nil
}

// Evaluate checks records against the budgets. Records that match no
// rule pass. Violations come back in record order, time before space
// for a record that breaks both budgets.
func (f *File) Evaluate(records []store.Record) []Violation {
	var violations []Violation
	for _, rec := range records {
		rule, ok := f.match(rec.Doc)
		if !ok {
			continue
		}
		if rule.MaxTime != "" && Rank(rec.Time) > Rank(analysis.Label(rule.MaxTime)) {
			violations = append(violations, Violation{
				Doc:       rec.Doc,
				Name:      rec.Name,
				StartLine: rec.StartLine,
				Dimension: "time",
				Actual:    rec.Time,
				Limit:     analysis.Label(rule.MaxTime),
				PathGlob:  rule.PathGlob,
			})
		}
		if rule.MaxSpace != "" && Rank(rec.Space) > Rank(analysis.Label(rule.MaxSpace)) {
			violations = append(violations, Violation{
				Doc:       rec.Doc,
				Name:      rec.Name,
				StartLine: rec.StartLine,
				Dimension: "space",
				Actual:    rec.Space,
				Limit:     analysis.Label(rule.MaxSpace),
				PathGlob:  rule.PathGlob,
			})
		}
	}
	return violations
}

func (f *File) match(doc string) (Rule, bool) {
	normalized := filepath.ToSlash(doc)
	for _, r := range f.Rules {
		if ok, _ := doublestar.Match(r.PathGlob, normalized); ok {
			return r, true
		}
	}
	return Rule{}, false
}
