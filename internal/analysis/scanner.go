package analysis

import (
	"regexp"
	"strings"
)

// endMode selects how a candidate's block end is located.
type endMode int

const (
	endBrace endMode = iota
	endIndent
)

// maxBlockSpan caps how far past a declaration the scanner looks for a
// block end before giving up.
const maxBlockSpan = 50

// declRule recognizes one declaration form. The first capture group
// holds the candidate name.
type declRule struct {
	pattern *regexp.Regexp
	end     endMode
	// rejectKeywords guards loose patterns against control-flow words.
	rejectKeywords bool
}

var braceRules = []declRule{
	// function declarations, including export/default/async/generator forms
	{pattern: regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`), end: endBrace},
	// const/let/var bindings of arrow functions and function expressions
	{pattern: regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*(?:async\s+)?(?:function\b|\([^)]*\)\s*=>|[A-Za-z_$][A-Za-z0-9_$]*\s*=>)`), end: endBrace},
	// class declarations
	{pattern: regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][A-Za-z0-9_$]*)`), end: endBrace},
	// method and constructor shorthand, lowest priority so the arrow
	// rule wins on shared lines
	{pattern: regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|async|override)\s+)*([A-Za-z_$][A-Za-z0-9_$]*)\s*\([^)]*\)\s*\{`), end: endBrace, rejectKeywords: true},
}

var indentRules = []declRule{
	{pattern: regexp.MustCompile(`^\s*async\s+def\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`), end: endIndent},
	{pattern: regexp.MustCompile(`^\s*def\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`), end: endIndent},
	{pattern: regexp.MustCompile(`^\s*class\s+([A-Za-z_][A-Za-z0-9_]*)`), end: endIndent},
}

// controlKeywords are words the method shorthand rule must never treat
// as a function name.
var controlKeywords = map[string]bool{
	"if":       true,
	"for":      true,
	"while":    true,
	"switch":   true,
	"catch":    true,
	"return":   true,
	"else":     true,
	"do":       true,
	"function": true,
	"new":      true,
}

func rulesForFamily(family Family) []declRule {
	switch family {
	case FamilyBrace:
		return braceRules
	case FamilyIndent:
		return indentRules
	default:
		rules := make([]declRule, 0, len(braceRules)+len(indentRules))
		rules = append(rules, braceRules...)
		rules = append(rules, indentRules...)
		return rules
	}
}

// ScanDocument finds function candidates in lines using the family's
// declaration rules. Rules are tried in order on each line; the first
// match wins and a line yields at most one candidate. Nested
// declarations are reported as independent candidates with
// independently computed ends.
func ScanDocument(lines []string, family Family) []FunctionCandidate {
	rules := rulesForFamily(family)
	var candidates []FunctionCandidate
	for i, line := range lines {
		name, end, ok := matchDecl(rules, line)
		if !ok {
			continue
		}
		var endLine int
		if end == endBrace {
			endLine = braceEnd(lines, i)
		} else {
			endLine = indentEnd(lines, i)
		}
		if endLine <= i {
			continue
		}
		candidates = append(candidates, FunctionCandidate{
			Name:      name,
			StartLine: i,
			EndLine:   endLine,
		})
	}
	return candidates
}

func matchDecl(rules []declRule, line string) (string, endMode, bool) {
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if r.rejectKeywords && controlKeywords[m[1]] {
			continue
		}
		return m[1], r.end, true
	}
	return "", endBrace, false
}

// braceEnd walks forward from start tracking a running brace balance.
// The block ends on the first line where the balance returns to zero
// after a body was entered. Unterminated blocks fall back to a capped
// window.
func braceEnd(lines []string, start int) int {
	depth := 0
	entered := false
	for i := start; i < len(lines); i++ {
		opens := strings.Count(lines[i], "{")
		if opens > 0 {
			entered = true
		}
		depth += opens - strings.Count(lines[i], "}")
		if entered && depth <= 0 {
			return i
		}
	}
	return cappedEnd(lines, start)
}

// indentEnd ends a block at the first following non-blank line whose
// indentation does not exceed the declaration's. Blank lines inside a
// block never terminate it.
func indentEnd(lines []string, start int) int {
	base := indentWidth(lines[start])
	limit := start + maxBlockSpan
	for i := start + 1; i < len(lines) && i <= limit; i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		if indentWidth(lines[i]) <= base {
			return i
		}
	}
	return cappedEnd(lines, start)
}

func cappedEnd(lines []string, start int) int {
	end := start + maxBlockSpan
	if last := len(lines) - 1; end > last {
		return last
	}
	return end
}

func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
