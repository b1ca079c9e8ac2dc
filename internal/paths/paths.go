// Package paths centralizes path handling for the .bigo workspace
// directory and for canonical repo-relative document identities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// BigoDirName is the workspace directory created under a repo root.
const BigoDirName = ".bigo"

// BigoDir returns the workspace directory for a repo root.
func BigoDir(repoRoot string) string {
	return filepath.Join(repoRoot, BigoDirName)
}

// LogsDir returns the log directory under the workspace.
func LogsDir(repoRoot string) string {
	return filepath.Join(BigoDir(repoRoot), "logs")
}

// EnsureLogsDir creates the log directory if needed and returns it.
func EnsureLogsDir(repoRoot string) (string, error) {
	dir := LogsDir(repoRoot)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// MCPLogPath is where the stdio MCP server logs. The server cannot log
// to stdout without corrupting the JSON-RPC stream.
func MCPLogPath(repoRoot string) string {
	return filepath.Join(LogsDir(repoRoot), "mcp.log")
}

// APILogPath is where the HTTP API server logs when file logging is on.
func APILogPath(repoRoot string) string {
	return filepath.Join(LogsDir(repoRoot), "api.log")
}

// DBPath returns the SQLite record store path under the workspace.
func DBPath(repoRoot string) string {
	return filepath.Join(BigoDir(repoRoot), "bigo.db")
}

// TokenDBPath returns the API token store path under the workspace.
func TokenDBPath(repoRoot string) string {
	return filepath.Join(BigoDir(repoRoot), "tokens.db")
}

// CanonicalizePath converts an absolute path to the repo-relative
// canonical form used as a record's document identity: symlinks
// resolved, relative to the repo root, forward slashes.
func CanonicalizePath(absolutePath string, repoRoot string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		// If the file doesn't exist yet, use the path as-is
		if os.IsNotExist(err) {
			resolved = absolutePath
		} else {
			return "", err
		}
	}

	repoRootResolved, err := filepath.EvalSymlinks(repoRoot)
	if err != nil {
		if os.IsNotExist(err) {
			repoRootResolved = repoRoot
		} else {
			return "", err
		}
	}

	relativePath, err := filepath.Rel(repoRootResolved, resolved)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(relativePath), nil
}

// IsWithinRepo checks if a path is within the repository root
func IsWithinRepo(path string, repoRoot string) bool {
	canonical, err := CanonicalizePath(path, repoRoot)
	if err != nil {
		return false
	}

	// Path is outside repo if it starts with ..
	return !strings.HasPrefix(canonical, "..")
}

// NormalizePath normalizes a path by converting backslashes to forward slashes
// This is useful for paths that are already relative but need normalization
func NormalizePath(path string) string {
	return filepath.ToSlash(path)
}

// JoinRepoPath joins a repo root with a canonical path
func JoinRepoPath(repoRoot string, canonicalPath string) string {
	normalizedPath := strings.ReplaceAll(canonicalPath, "\\", "/")
	parts := strings.Split(normalizedPath, "/")
	return filepath.Join(append([]string{repoRoot}, parts...)...)
}
