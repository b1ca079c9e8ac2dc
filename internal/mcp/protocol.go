// Package mcp implements a Model Context Protocol server over stdio,
// exposing the complexity analyzer as editor-assistant tools.
package mcp

// Message is a JSON-RPC 2.0 message in either direction. Requests
// carry Method and ID, notifications carry Method alone, and replies
// carry Result or Error.
type Message struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id,omitempty"`
	Method  string      `json:"method,omitempty"`
	Params  interface{} `json:"params,omitempty"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

// IsRequest reports whether the message expects a reply.
func (m *Message) IsRequest() bool { return m.Method != "" && m.ID != nil }

// IsNotification reports whether the message is fire-and-forget.
func (m *Message) IsNotification() bool { return m.Method != "" && m.ID == nil }

// RPCError is the JSON-RPC 2.0 error object.
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *RPCError) Error() string { return e.Message }

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// resultReply builds the reply carrying a result for a request ID.
func resultReply(id interface{}, result interface{}) *Message {
	return &Message{JSONRPC: "2.0", ID: id, Result: result}
}

// errorReply builds the reply carrying an error for a request ID.
func errorReply(id interface{}, code int, message string) *Message {
	return &Message{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	}
}
