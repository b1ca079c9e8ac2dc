package analysis

import (
	"path/filepath"
	"strings"
)

// Family selects which boundary rule set applies to a document.
type Family string

const (
	// FamilyBrace covers languages that close blocks with braces.
	FamilyBrace Family = "brace"
	// FamilyIndent covers languages that close blocks by dedenting.
	FamilyIndent Family = "indent"
	// FamilyMixed tries the brace rules first, then the indent rules.
	FamilyMixed Family = "mixed"
)

var familyByLanguageID = map[string]Family{
	"javascript":      FamilyBrace,
	"javascriptreact": FamilyBrace,
	"typescript":      FamilyBrace,
	"typescriptreact": FamilyBrace,
	"java":            FamilyBrace,
	"c":               FamilyBrace,
	"cpp":             FamilyBrace,
	"csharp":          FamilyBrace,
	"go":              FamilyBrace,
	"rust":            FamilyBrace,
	"php":             FamilyBrace,
	"swift":           FamilyBrace,
	"kotlin":          FamilyBrace,
	"scala":           FamilyBrace,
	"dart":            FamilyBrace,
	"python":          FamilyIndent,
}

var familyByExtension = map[string]Family{
	".js":    FamilyBrace,
	".jsx":   FamilyBrace,
	".mjs":   FamilyBrace,
	".cjs":   FamilyBrace,
	".ts":    FamilyBrace,
	".tsx":   FamilyBrace,
	".java":  FamilyBrace,
	".c":     FamilyBrace,
	".h":     FamilyBrace,
	".cpp":   FamilyBrace,
	".cc":    FamilyBrace,
	".hpp":   FamilyBrace,
	".cs":    FamilyBrace,
	".go":    FamilyBrace,
	".rs":    FamilyBrace,
	".php":   FamilyBrace,
	".swift": FamilyBrace,
	".kt":    FamilyBrace,
	".kts":   FamilyBrace,
	".scala": FamilyBrace,
	".dart":  FamilyBrace,
	".py":    FamilyIndent,
	".pyw":   FamilyIndent,
}

// DetectFamily resolves the rule family for a document. An editor
// supplied language identifier wins over the file extension; anything
// unrecognized falls back to FamilyMixed.
func DetectFamily(languageID, filename string) Family {
	if f, ok := familyByLanguageID[strings.ToLower(languageID)]; ok {
		return f
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if f, ok := familyByExtension[ext]; ok {
		return f
	}
	return FamilyMixed
}

// KnownExtension reports whether the extension maps to a family
// without falling back to FamilyMixed. Directory scans use it to skip
// files that are unlikely to contain analyzable source.
func KnownExtension(filename string) bool {
	_, ok := familyByExtension[strings.ToLower(filepath.Ext(filename))]
	return ok
}
