package mcp

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bigo/internal/analysis"
	"bigo/internal/paths"
	"bigo/internal/version"
)

// Tool represents a tool exposed via MCP
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolHandler is a function that handles a tool call.
type ToolHandler func(params map[string]interface{}) (interface{}, error)

// GetToolDefinitions returns all tool definitions
func (s *MCPServer) GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "analyzeComplexity",
			Description: "Estimate worst-case time and space complexity for every function in a file or inline source. Returns Big-O labels per function.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Repo-relative path of the file to analyze",
					},
					"content": map[string]interface{}{
						"type":        "string",
						"description": "Inline source to analyze instead of a file",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Language identifier (e.g. go, python); inferred from the path when omitted",
					},
				},
			},
		},
		{
			Name:        "listFunctions",
			Description: "List detected function and method boundaries in a file without computing complexity verdicts.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Repo-relative path of the file to scan",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "getStatus",
			Description: "Get analyzer status: version, repository root, and stored-record counts.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// RegisterTools wires each tool name to its handler.
func (s *MCPServer) RegisterTools() {
	s.tools["analyzeComplexity"] = s.toolAnalyzeComplexity
	s.tools["listFunctions"] = s.toolListFunctions
	s.tools["getStatus"] = s.toolGetStatus
}

func (s *MCPServer) toolAnalyzeComplexity(params map[string]interface{}) (interface{}, error) {
	path, _ := params["path"].(string)
	content, _ := params["content"].(string)
	language, _ := params["language"].(string)

	if path == "" && content == "" {
		return nil, fmt.Errorf("either path or content is required")
	}

	if content != "" {
		return s.analyzer.AnalyzeSource(path, []byte(content), language), nil
	}

	abs, err := s.resolvePath(path)
	if err != nil {
		return nil, err
	}
	source, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return s.analyzer.AnalyzeSource(path, source, language), nil
}

func (s *MCPServer) toolListFunctions(params map[string]interface{}) (interface{}, error) {
	path, _ := params["path"].(string)
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}

	abs, err := s.resolvePath(path)
	if err != nil {
		return nil, err
	}
	source, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	family := analysis.DetectFamily("", path)
	return map[string]interface{}{
		"path":      path,
		"family":    family,
		"functions": analysis.ScanDocument(analysis.SplitLines(string(source)), family),
	}, nil
}

func (s *MCPServer) toolGetStatus(params map[string]interface{}) (interface{}, error) {
	status := map[string]interface{}{
		"version":      version.Version,
		"repoRoot":     s.repoRoot,
		"storeEnabled": s.store != nil,
	}
	if s.store != nil {
		if n, err := s.store.Len(); err == nil {
			status["records"] = n
		}
	}
	return status, nil
}

// resolvePath joins a client path against the repo root and rejects
// escapes, same as the HTTP API.
func (s *MCPServer) resolvePath(relPath string) (string, error) {
	abs := filepath.Join(s.repoRoot, filepath.FromSlash(relPath))
	if !paths.IsWithinRepo(abs, s.repoRoot) {
		return "", fmt.Errorf("path escapes repository root: %s", relPath)
	}
	return abs, nil
}

// textResult wraps a tool result in the MCP content envelope: a single
// text block holding the JSON-encoded payload.
func textResult(payload interface{}) map[string]interface{} {
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		jsonBytes = []byte(fmt.Sprintf(`{"error":%q}`, err.Error()))
	}
	return map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": string(jsonBytes),
			},
		},
	}
}
