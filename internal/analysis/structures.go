package analysis

import (
	"regexp"
	"strings"
)

// StructureTag labels one recognized data structure category.
type StructureTag string

const (
	StructureArray StructureTag = "array"
	StructureMap   StructureTag = "map"
	StructureSet   StructureTag = "set"
	StructureStack StructureTag = "stack"
	StructureQueue StructureTag = "queue"
	StructureTree  StructureTag = "tree"
)

var (
	arrayPattern = regexp.MustCompile(`=\s*\[|\bnew\s+Array\b|\bArray\.from\b|\blist\s*\(`)
	mapPattern   = regexp.MustCompile(`=\s*\{|\bnew\s+(?:Map|WeakMap)\b|\bnew\s+Object\b|\bdict\s*\(`)
	setPattern   = regexp.MustCompile(`\bnew\s+(?:Set|WeakSet)\b|\bset\s*\(|\bfrozenset\s*\(`)
	treePattern  = regexp.MustCompile(`\b(?:TreeNode|ListNode|LinkedList|DoublyLinkedList|BinaryTree|Trie)\b`)
)

// FindStructures reports which data structure idioms appear in the
// span. Stack and Queue require their operation pairs; the rest fire
// on a single literal or constructor hit. Presence only, never counts.
func FindStructures(span string) map[StructureTag]bool {
	tags := make(map[StructureTag]bool)
	if arrayPattern.MatchString(span) {
		tags[StructureArray] = true
	}
	if mapPattern.MatchString(span) {
		tags[StructureMap] = true
	}
	if setPattern.MatchString(span) {
		tags[StructureSet] = true
	}
	if treePattern.MatchString(span) {
		tags[StructureTree] = true
	}

	push := strings.Contains(span, ".push(") || strings.Contains(span, ".append(")
	if push && strings.Contains(span, ".pop(") {
		tags[StructureStack] = true
	}

	dequeue := strings.Contains(span, ".shift(") || strings.Contains(span, ".popleft(")
	if (strings.Contains(span, ".enqueue(") && strings.Contains(span, ".dequeue(")) || (push && dequeue) {
		tags[StructureQueue] = true
	}
	return tags
}
