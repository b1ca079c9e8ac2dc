package analysis

import (
	"os"
	"path/filepath"
	"testing"
)

func findReport(reports []FunctionReport, name string) *FunctionReport {
	for i := range reports {
		if reports[i].Name == name {
			return &reports[i]
		}
	}
	return nil
}

func TestAnalyzeSource_JavaScript(t *testing.T) {
	source := []byte(`function pairs(items) {
  const out = [];
  for (let i = 0; i < items.length; i++) {
    for (let j = 0; j < items.length; j++) {
      out.push([items[i], items[j]]);
    }
  }
  return out;
}

function head(items) {
  return items[0];
}
`)

	analyzer := NewAnalyzer()
	report := analyzer.AnalyzeSource("pairs.js", source, "")

	if report.Error != "" {
		t.Fatalf("unexpected error: %s", report.Error)
	}
	if report.Family != FamilyBrace {
		t.Errorf("family = %s, want %s", report.Family, FamilyBrace)
	}
	if len(report.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d: %+v", len(report.Functions), report.Functions)
	}

	// Nested loops with an array literal: quadratic time, linear space.
	pairs := findReport(report.Functions, "pairs")
	if pairs == nil {
		t.Fatal("pairs not found")
	}
	if pairs.Time != Quadratic {
		t.Errorf("pairs: time = %s, want %s", pairs.Time, Quadratic)
	}
	if pairs.Space != Linear {
		t.Errorf("pairs: space = %s, want %s", pairs.Space, Linear)
	}

	head := findReport(report.Functions, "head")
	if head == nil {
		t.Fatal("head not found")
	}
	if head.Time != Constant || head.Space != Constant {
		t.Errorf("head = %s/%s, want O(1)/O(1)", head.Time, head.Space)
	}
}

func TestAnalyzeSource_Python(t *testing.T) {
	source := []byte(`def fib(n):
    if n < 2:
        return n
    return fib(n - 1) + fib(n - 2)

def scan(rows):
    seen = []
    for row in rows:
        seen.append(row)
    return seen
`)

	analyzer := NewAnalyzer()
	report := analyzer.AnalyzeSource("algo.py", source, "")

	if report.Family != FamilyIndent {
		t.Errorf("family = %s, want %s", report.Family, FamilyIndent)
	}
	if report.Language != "py" {
		t.Errorf("language = %q, want %q", report.Language, "py")
	}

	fib := findReport(report.Functions, "fib")
	if fib == nil {
		t.Fatalf("fib not found in %+v", report.Functions)
	}
	if fib.Time != Exponential {
		t.Errorf("fib: time = %s, want %s", fib.Time, Exponential)
	}

	scan := findReport(report.Functions, "scan")
	if scan == nil {
		t.Fatalf("scan not found in %+v", report.Functions)
	}
	if scan.Time != Linear {
		t.Errorf("scan: time = %s, want %s", scan.Time, Linear)
	}
	if scan.Space != Linear {
		t.Errorf("scan: space = %s, want %s", scan.Space, Linear)
	}
}

func TestAnalyzeSource_LanguageIDWins(t *testing.T) {
	source := []byte("def f(x):\n    return x\nend = 1\n")

	analyzer := NewAnalyzer()
	report := analyzer.AnalyzeSource("notes.txt", source, "python")

	if report.Family != FamilyIndent {
		t.Errorf("family = %s, want %s", report.Family, FamilyIndent)
	}
	if report.Language != "python" {
		t.Errorf("language = %q, want %q", report.Language, "python")
	}
	if findReport(report.Functions, "f") == nil {
		t.Errorf("f not found: %+v", report.Functions)
	}
}

func TestAnalyzeSpan_Idempotent(t *testing.T) {
	span := "for (const x of xs) {\n  seen.push(x);\n}"

	analyzer := NewAnalyzer()
	first := analyzer.AnalyzeSpan(span, FamilyBrace)
	second := analyzer.AnalyzeSpan(span, FamilyBrace)

	if first != second {
		t.Errorf("same span, different verdicts: %+v vs %+v", first, second)
	}
}

func TestAnalyzeSpan_NoPatterns(t *testing.T) {
	analyzer := NewAnalyzer()
	v := analyzer.AnalyzeSpan("just text with nothing to find", FamilyMixed)

	if v.Time != Constant || v.Space != Constant {
		t.Errorf("plain text = %+v, want O(1)/O(1)", v)
	}
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.js")
	content := "function greet(name) {\n  return 'hi ' + name;\n}\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	analyzer := NewAnalyzer()
	report := analyzer.AnalyzeFile(path)

	if report.Error != "" {
		t.Fatalf("unexpected error: %s", report.Error)
	}
	if len(report.Functions) != 1 || report.Functions[0].Name != "greet" {
		t.Errorf("got %+v, want one function greet", report.Functions)
	}
}

func TestAnalyzeFile_MissingFileIsSoftError(t *testing.T) {
	analyzer := NewAnalyzer()
	report := analyzer.AnalyzeFile(filepath.Join(t.TempDir(), "absent.js"))

	if report.Error == "" {
		t.Error("expected a soft error for a missing file")
	}
	if report.Functions == nil {
		t.Error("functions should be an empty slice, not nil")
	}
	if len(report.Functions) != 0 {
		t.Errorf("expected no functions, got %+v", report.Functions)
	}
}

func TestSplitLines_CRLF(t *testing.T) {
	lines := SplitLines("function f() {\r\n  return 1;\r\n}\r\n")

	want := []string{"function f() {", "  return 1;", "}", ""}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestAnalyzeDocument_EmptyInput(t *testing.T) {
	analyzer := NewAnalyzer()
	if got := analyzer.AnalyzeDocument(nil, FamilyBrace); len(got) != 0 {
		t.Errorf("nil lines: got %+v", got)
	}
}
