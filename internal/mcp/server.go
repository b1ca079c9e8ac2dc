package mcp

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"bigo/internal/analysis"
	"bigo/internal/store"
)

// MCPServer represents the MCP server
type MCPServer struct {
	stdin    io.Reader
	stdout   io.Writer
	scanner  *bufio.Scanner
	logger   *slog.Logger
	version  string
	repoRoot string
	analyzer *analysis.Analyzer
	store    store.Store
	tools    map[string]ToolHandler
}

// NewMCPServer creates a new MCP server. The store may be nil; the
// getStatus tool then reports it as disabled.
func NewMCPServer(version, repoRoot string, st store.Store, logger *slog.Logger) *MCPServer {
	server := &MCPServer{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		logger:   logger,
		version:  version,
		repoRoot: repoRoot,
		analyzer: analysis.NewAnalyzer(),
		store:    st,
		tools:    make(map[string]ToolHandler),
	}

	server.RegisterTools()

	return server
}

// Start starts the MCP server and begins processing messages
func (s *MCPServer) Start() error {
	s.logger.Info("MCP server starting", "version", s.version)

	// Main message loop
	for {
		msg, err := s.nextMessage()
		if err != nil {
			if err == io.EOF {
				s.logger.Info("MCP server shutting down (EOF)")
				return nil
			}
			s.logger.Error("Error reading message", "error", err.Error())

			// Try to send error response if we can extract an ID
			if msg != nil && msg.ID != nil {
				_ = s.sendError(msg.ID, CodeParseError, fmt.Sprintf("Failed to parse message: %v", err))
			}
			continue
		}

		// Process the message
		response := s.handleMessage(msg)

		// Write response if one was generated (notifications don't generate responses)
		if response != nil {
			if err := s.send(response); err != nil {
				s.logger.Error("Error writing response", "error", err.Error())
			}
		}
	}
}

// SetStdin sets the input stream (for testing)
func (s *MCPServer) SetStdin(r io.Reader) {
	s.stdin = r
	s.scanner = nil // Reset scanner so it will be recreated with new reader
}

// SetStdout sets the output stream (for testing)
func (s *MCPServer) SetStdout(w io.Writer) {
	s.stdout = w
}

// handleMessage processes an incoming MCP message and returns a response
func (s *MCPServer) handleMessage(msg *Message) *Message {
	if msg.IsRequest() {
		return s.handleRequest(msg)
	}

	if msg.IsNotification() {
		s.handleNotification(msg)
		return nil
	}

	return errorReply(msg.ID, CodeInvalidRequest, "Invalid message: not a request or notification")
}

// handleRequest handles a JSON-RPC request
func (s *MCPServer) handleRequest(msg *Message) *Message {
	s.logger.Debug("Handling request", "method", msg.Method, "id", msg.ID)

	switch msg.Method {
	case "initialize":
		return s.handleInitializeRequest(msg)
	case "tools/list":
		return s.handleListToolsRequest(msg)
	case "tools/call":
		return s.handleCallToolRequest(msg)
	default:
		return errorReply(msg.ID, CodeMethodNotFound, fmt.Sprintf("Method not found: %s", msg.Method))
	}
}

// handleNotification handles a JSON-RPC notification
func (s *MCPServer) handleNotification(msg *Message) {
	switch msg.Method {
	case "notifications/initialized":
		s.logger.Info("Client initialized")
	default:
		s.logger.Debug("Unknown notification", "method", msg.Method)
	}
}

// ServerCapabilities represents the capabilities exposed by the server
type ServerCapabilities struct {
	Tools *ToolsCapability `json:"tools,omitempty"`
}

// ToolsCapability represents the tools capability
type ToolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// ServerInfo identifies the server to the client
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InitializeResult represents the result of the initialize request
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      ServerInfo         `json:"serverInfo"`
}

// handleInitializeRequest handles the initialize request
func (s *MCPServer) handleInitializeRequest(msg *Message) *Message {
	params, ok := msg.Params.(map[string]interface{})
	if !ok {
		params = make(map[string]interface{})
	}

	s.logger.Info("MCP server initializing", "clientInfo", params["clientInfo"])

	result := &InitializeResult{
		ProtocolVersion: "2024-11-05",
		Capabilities: ServerCapabilities{
			Tools: &ToolsCapability{},
		},
		ServerInfo: ServerInfo{
			Name:    "bigo",
			Version: s.version,
		},
	}

	return resultReply(msg.ID, result)
}

// handleListToolsRequest handles the tools/list request
func (s *MCPServer) handleListToolsRequest(msg *Message) *Message {
	return resultReply(msg.ID, map[string]interface{}{
		"tools": s.GetToolDefinitions(),
	})
}

// handleCallToolRequest handles the tools/call request
func (s *MCPServer) handleCallToolRequest(msg *Message) *Message {
	params, ok := msg.Params.(map[string]interface{})
	if !ok {
		return errorReply(msg.ID, CodeInvalidParams, "Invalid params: expected object")
	}

	toolName, ok := params["name"].(string)
	if !ok {
		return errorReply(msg.ID, CodeInvalidParams, "Invalid params: name is required")
	}

	toolParams, ok := params["arguments"].(map[string]interface{})
	if !ok {
		toolParams = make(map[string]interface{})
	}

	handler, exists := s.tools[toolName]
	if !exists {
		return errorReply(msg.ID, CodeMethodNotFound, fmt.Sprintf("Unknown tool: %s", toolName))
	}

	s.logger.Info("Calling tool", "tool", toolName)

	result, err := handler(toolParams)
	if err != nil {
		return resultReply(msg.ID, textResult(map[string]interface{}{
			"error": err.Error(),
		}))
	}

	return resultReply(msg.ID, textResult(result))
}
