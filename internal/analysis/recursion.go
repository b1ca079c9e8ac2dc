package analysis

import (
	"regexp"
	"strings"
)

// declNamePattern is the coarse declaration shape shared by the brace
// and indent families.
var declNamePattern = regexp.MustCompile(`\b(?:function|def)\s+([A-Za-z_$][A-Za-z0-9_$]*)`)

// FindRecursive reports which functions declared in the span appear to
// call themselves. A name counts as recursive when the literal text
// "NAME(" occurs anywhere past the name token of its declaration.
// Same-named helpers and substring collisions produce false positives;
// mutual recursion through another name is not detected.
func FindRecursive(span string) map[string]bool {
	recursive := make(map[string]bool)
	for _, m := range declNamePattern.FindAllStringSubmatchIndex(span, -1) {
		name := span[m[2]:m[3]]
		if recursive[name] {
			continue
		}
		if strings.Contains(span[m[2]+1:], name+"(") {
			recursive[name] = true
		}
	}
	return recursive
}
