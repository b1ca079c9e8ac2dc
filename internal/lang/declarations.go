// Package lang resolves source language families, layering the
// repository's optional LANGUAGES.toml declarations over the built-in
// identifier and extension tables.
package lang

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"bigo/internal/analysis"
)

// LanguagesDeclarationFile is the default filename for language declarations
const LanguagesDeclarationFile = "LANGUAGES.toml"

// LanguageDeclaration represents a declared language in LANGUAGES.toml
type LanguageDeclaration struct {
	// ID is the language identifier editors report (e.g. "ruby")
	ID string `toml:"id"`

	// Family is the boundary rule family: brace, indent, or mixed
	Family string `toml:"family"`

	// Extensions are file extensions for this language, with or
	// without the leading dot
	Extensions []string `toml:"extensions,omitempty"`
}

// LanguagesFile represents the root structure of LANGUAGES.toml
type LanguagesFile struct {
	// Version is the schema version
	Version int `toml:"version"`

	// Languages is the list of declared languages
	Languages []LanguageDeclaration `toml:"language"`
}

// ParseLanguagesFile parses a LANGUAGES.toml file from the given path
func ParseLanguagesFile(filePath string) (*LanguagesFile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read LANGUAGES.toml: %w", err)
	}

	var file LanguagesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse LANGUAGES.toml: %w", err)
	}

	if file.Version < 1 {
		file.Version = 1
	}

	for i, decl := range file.Languages {
		if err := validateDeclaration(i, decl); err != nil {
			return nil, err
		}
	}

	return &file, nil
}

func validateDeclaration(index int, decl LanguageDeclaration) error {
	if decl.ID == "" {
		return fmt.Errorf("language[%d]: missing required 'id' field", index)
	}
	switch analysis.Family(decl.Family) {
	case analysis.FamilyBrace, analysis.FamilyIndent, analysis.FamilyMixed:
		return nil
	default:
		return fmt.Errorf("language[%d] %q: invalid family %q (want brace, indent, or mixed)", index, decl.ID, decl.Family)
	}
}

// Table resolves language families with user declarations layered over
// the built-in tables. Declarations are applied in file order, so a
// later duplicate wins.
type Table struct {
	byID  map[string]analysis.Family
	byExt map[string]analysis.Family
}

// NewTable builds a resolution table from declarations. nil or empty
// declarations yield a table backed only by the built-ins.
func NewTable(decls []LanguageDeclaration) *Table {
	t := &Table{
		byID:  make(map[string]analysis.Family),
		byExt: make(map[string]analysis.Family),
	}
	for _, d := range decls {
		family := analysis.Family(d.Family)
		t.byID[strings.ToLower(d.ID)] = family
		for _, ext := range d.Extensions {
			if n := normalizeExt(ext); n != "" {
				t.byExt[n] = family
			}
		}
	}
	return t
}

// Resolve returns the family for a document: declared identifiers
// first, then declared extensions, then the built-in tables.
func (t *Table) Resolve(languageID, filename string) analysis.Family {
	if t != nil {
		if languageID != "" {
			if f, ok := t.byID[strings.ToLower(languageID)]; ok {
				return f
			}
		}
		if ext := normalizeExt(filepath.Ext(filename)); ext != "" {
			if f, ok := t.byExt[ext]; ok {
				return f
			}
		}
	}
	return analysis.DetectFamily(languageID, filename)
}

// LoadTable builds a resolution table from the repo's declarations
// file. A missing file is not an error and yields the built-ins only.
func LoadTable(repoRoot, declarationFile string) (*Table, error) {
	if declarationFile == "" {
		declarationFile = LanguagesDeclarationFile
	}

	filePath := declarationFile
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(repoRoot, declarationFile)
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return NewTable(nil), nil
	}

	file, err := ParseLanguagesFile(filePath)
	if err != nil {
		return nil, err
	}
	return NewTable(file.Languages), nil
}

// WriteLanguagesFile writes a LanguagesFile to the given path
func WriteLanguagesFile(filePath string, file *LanguagesFile) error {
	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal LANGUAGES.toml: %w", err)
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write LANGUAGES.toml: %w", err)
	}

	return nil
}

// CreateExampleLanguagesFile creates an example LANGUAGES.toml file
func CreateExampleLanguagesFile(filePath string) error {
	example := &LanguagesFile{
		Version: 1,
		Languages: []LanguageDeclaration{
			{
				ID:         "ruby",
				Family:     "brace",
				Extensions: []string{".rb"},
			},
			{
				ID:         "nim",
				Family:     "indent",
				Extensions: []string{".nim"},
			},
		},
	}

	return WriteLanguagesFile(filePath, example)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
