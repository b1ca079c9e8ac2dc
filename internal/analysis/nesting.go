package analysis

import (
	"regexp"
	"strings"
)

// loopPattern matches any line that opens an iteration construct,
// covering keyword loops and the common chained iteration callbacks.
var loopPattern = regexp.MustCompile(`\bfor\b|\bwhile\b|\bdo\s*\{|\.forEach\s*\(|\.map\s*\(|\.filter\s*\(|\.reduce\s*\(`)

// EstimateDepth reports the maximum loop nesting seen across a span.
// A line carrying any loop indicator raises the depth once no matter
// how many indicators it holds; closing braces on the line then lower
// it, floored at zero.
func EstimateDepth(span string) int {
	depth := 0
	maxDepth := 0
	for _, line := range strings.Split(span, "\n") {
		if loopPattern.MatchString(line) {
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		}
		depth -= strings.Count(line, "}")
		if depth < 0 {
			depth = 0
		}
	}
	return maxDepth
}
