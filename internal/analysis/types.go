package analysis

import "fmt"

// Label is one asymptotic complexity class as rendered in reports.
type Label string

// The closed label set the classifier can produce. Polynomial labels
// above quadratic are built with PolyLabel.
const (
	Constant     Label = "O(1)"
	Logarithmic  Label = "O(log n)"
	Linear       Label = "O(n)"
	Linearithmic Label = "O(n log n)"
	Quadratic    Label = "O(n^2)"
	Exponential  Label = "O(2^n)"
)

// PolyLabel renders the polynomial label for nesting depth k.
func PolyLabel(k int) Label {
	switch {
	case k <= 1:
		return Linear
	case k == 2:
		return Quadratic
	default:
		return Label(fmt.Sprintf("O(n^%d)", k))
	}
}

// Verdict is the complexity estimate for one analyzed span.
type Verdict struct {
	Time  Label `json:"time"`
	Space Label `json:"space"`
}

// FunctionCandidate is one detected function or class boundary. Line
// indices are zero-based. EndLine is the index of the line that closes
// the block, so the analyzed span is lines[StartLine:EndLine].
type FunctionCandidate struct {
	Name      string `json:"name"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
}

// FunctionReport pairs a candidate with its verdict.
type FunctionReport struct {
	FunctionCandidate
	Verdict
}

// DocumentReport is the full result for one document. Error is a soft
// failure note; a report with Error set still carries whatever
// functions were analyzed, possibly none.
type DocumentReport struct {
	Path      string           `json:"path,omitempty"`
	Language  string           `json:"language,omitempty"`
	Family    Family           `json:"family"`
	Functions []FunctionReport `json:"functions"`
	Error     string           `json:"error,omitempty"`
}
