package analysis

import "regexp"

// Idioms flags the algorithmic patterns the classifier reacts to.
type Idioms struct {
	GenericSort      bool `json:"genericSort,omitempty"`
	LinearithmicSort bool `json:"linearithmicSort,omitempty"`
	BinarySearch     bool `json:"binarySearch,omitempty"`
}

var (
	builtinSortPattern   = regexp.MustCompile(`\bsort\s*\(|\bsorted\s*\(|\.sort\s*\(`)
	quadraticSortPattern = regexp.MustCompile(`(?i)(?:bubble|selection|insertion)_?sort`)
	linearithmicPattern  = regexp.MustCompile(`(?i)(?:quick|merge)_?sort`)
	binaryTokenPattern   = regexp.MustCompile(`(?i)binary`)
	halvingWhilePattern  = regexp.MustCompile(`(?i)\bwhile\b[^\n]*(?:<=|>=|==|!=|<|>)[^\n]*/\s*2\b`)
)

// FindIdioms reports the sort and search idioms present in a span.
// Built-in sort calls and the classic quadratic sort names set
// GenericSort; quicksort/mergesort names set LinearithmicSort; the
// token "binary" or a while line comparing against a halved value sets
// BinarySearch.
func FindIdioms(span string) Idioms {
	return Idioms{
		GenericSort:      builtinSortPattern.MatchString(span) || quadraticSortPattern.MatchString(span),
		LinearithmicSort: linearithmicPattern.MatchString(span),
		BinarySearch:     binaryTokenPattern.MatchString(span) || halvingWhilePattern.MatchString(span),
	}
}
