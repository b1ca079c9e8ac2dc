package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestWorkspacePaths(t *testing.T) {
	root := filepath.Join("some", "repo")

	if got := BigoDir(root); got != filepath.Join(root, ".bigo") {
		t.Errorf("BigoDir = %s", got)
	}
	if got := DBPath(root); !strings.HasSuffix(got, filepath.Join(".bigo", "bigo.db")) {
		t.Errorf("DBPath = %s", got)
	}
	if got := TokenDBPath(root); !strings.HasSuffix(got, filepath.Join(".bigo", "tokens.db")) {
		t.Errorf("TokenDBPath = %s", got)
	}
	if got := MCPLogPath(root); !strings.HasSuffix(got, filepath.Join("logs", "mcp.log")) {
		t.Errorf("MCPLogPath = %s", got)
	}
	if got := APILogPath(root); !strings.HasSuffix(got, filepath.Join("logs", "api.log")) {
		t.Errorf("APILogPath = %s", got)
	}
}

func TestEnsureLogsDir(t *testing.T) {
	root := t.TempDir()

	dir, err := EnsureLogsDir(root)
	if err != nil {
		t.Fatalf("EnsureLogsDir() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("log dir not created: %v", err)
	}

	// Second call is idempotent.
	if _, err := EnsureLogsDir(root); err != nil {
		t.Errorf("EnsureLogsDir() second call error = %v", err)
	}
}

func TestCanonicalizePath(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "src")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(sub, "app.js")
	if err := os.WriteFile(file, []byte("function f() {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := CanonicalizePath(file, root)
	if err != nil {
		t.Fatalf("CanonicalizePath() error = %v", err)
	}
	if got != "src/app.js" {
		t.Errorf("CanonicalizePath() = %q, want %q", got, "src/app.js")
	}
}

func TestCanonicalizePathMissingFile(t *testing.T) {
	root := t.TempDir()
	missing := filepath.Join(root, "not-yet.py")

	got, err := CanonicalizePath(missing, root)
	if err != nil {
		t.Fatalf("CanonicalizePath() error = %v", err)
	}
	if got != "not-yet.py" {
		t.Errorf("CanonicalizePath() = %q", got)
	}
}

func TestCanonicalizePathResolvesSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on windows")
	}

	root := t.TempDir()
	real := filepath.Join(root, "real.js")
	if err := os.WriteFile(real, []byte("let x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(root, "alias.js")
	if err := os.Symlink(real, link); err != nil {
		t.Fatal(err)
	}

	got, err := CanonicalizePath(link, root)
	if err != nil {
		t.Fatalf("CanonicalizePath() error = %v", err)
	}
	if got != "real.js" {
		t.Errorf("CanonicalizePath() = %q, want resolution to real.js", got)
	}
}

func TestIsWithinRepo(t *testing.T) {
	root := t.TempDir()
	inside := filepath.Join(root, "src", "a.js")
	outside := filepath.Join(root, "..", "escape.js")

	if !IsWithinRepo(inside, root) {
		t.Error("inside path reported as outside")
	}
	if IsWithinRepo(outside, root) {
		t.Error("outside path reported as inside")
	}
}

func TestJoinRepoPath(t *testing.T) {
	got := JoinRepoPath("root", "src/deep/file.js")
	want := filepath.Join("root", "src", "deep", "file.js")
	if got != want {
		t.Errorf("JoinRepoPath() = %q, want %q", got, want)
	}

	// Backslash input is normalized before joining.
	got = JoinRepoPath("root", `src\deep\file.js`)
	if got != want {
		t.Errorf("JoinRepoPath() = %q, want %q", got, want)
	}
}

func TestNormalizePath(t *testing.T) {
	if got := NormalizePath(`a\b\c.js`); runtime.GOOS == "windows" && got != "a/b/c.js" {
		t.Errorf("NormalizePath() = %q", got)
	}
	if got := NormalizePath("a/b/c.js"); got != "a/b/c.js" {
		t.Errorf("NormalizePath() = %q", got)
	}
}
