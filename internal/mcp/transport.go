package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// MaxMessageSize caps a single newline-delimited message at 1MB, well
// above any inline source a client would send for analysis.
const MaxMessageSize = 1024 * 1024

// nextMessage reads one newline-delimited message from stdin. io.EOF
// means the client closed the pipe and the session is over.
func (s *MCPServer) nextMessage() (*Message, error) {
	if s.scanner == nil {
		// Scanner's default 64KB buffer is too small for inline
		// sources; grow it to the message cap.
		s.scanner = bufio.NewScanner(s.stdin)
		s.scanner.Buffer(make([]byte, MaxMessageSize), MaxMessageSize)
	}

	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return nil, fmt.Errorf("read from stdin: %w", err)
		}
		return nil, io.EOF
	}

	line := s.scanner.Bytes()
	s.logger.Debug("Message received", "bytes", len(line))

	var msg Message
	if err := json.Unmarshal(line, &msg); err != nil {
		return nil, fmt.Errorf("malformed message: %w", err)
	}
	return &msg, nil
}

// send marshals one reply and writes it followed by a newline.
func (s *MCPServer) send(msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal reply: %w", err)
	}

	s.logger.Debug("Reply sent", "bytes", len(data))

	if _, err := fmt.Fprintf(s.stdout, "%s\n", data); err != nil {
		return fmt.Errorf("write to stdout: %w", err)
	}
	return nil
}

func (s *MCPServer) sendError(id interface{}, code int, message string) error {
	return s.send(errorReply(id, code, message))
}
