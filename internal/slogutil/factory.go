package slogutil

import (
	"io"
	"log/slog"

	"bigo/internal/config"
	"bigo/internal/paths"
)

// Subsystem log files are capped at 10 MiB with three rotated
// generations kept alongside.
var defaultRotation = Rotation{MaxBytes: 10 << 20, Keep: 3}

// LoggerFactory creates configured file loggers for the subsystems
// that cannot log to the terminal: the stdio MCP server (stdout is the
// transport) and the HTTP API server when file logging is requested.
// Level precedence: explicit CLI level > config logging level.
type LoggerFactory struct {
	repoRoot string
	config   *config.Config
	cliLevel *slog.Level
	closers  []io.Closer
}

// NewLoggerFactory creates a new logger factory. cliLevel is nil when
// no CLI override was given.
func NewLoggerFactory(repoRoot string, cfg *config.Config, cliLevel *slog.Level) *LoggerFactory {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &LoggerFactory{
		repoRoot: repoRoot,
		config:   cfg,
		cliLevel: cliLevel,
	}
}

// MCPLogger creates the logger for the MCP server, writing to
// .bigo/logs/mcp.log. Failures degrade to a discard logger: a broken
// log path must never take down the editor transport.
func (f *LoggerFactory) MCPLogger() *slog.Logger {
	return f.fileLogger(paths.MCPLogPath(f.repoRoot))
}

// APILogger creates the logger for the HTTP API server, writing to
// .bigo/logs/api.log.
func (f *LoggerFactory) APILogger() *slog.Logger {
	return f.fileLogger(paths.APILogPath(f.repoRoot))
}

func (f *LoggerFactory) fileLogger(path string) *slog.Logger {
	if f.repoRoot == "" {
		return NewDiscardLogger()
	}
	if _, err := paths.EnsureLogsDir(f.repoRoot); err != nil {
		return NewDiscardLogger()
	}

	logger, closer, err := NewRotatingFileLogger(path, f.effectiveLevel(), defaultRotation)
	if err != nil {
		return NewDiscardLogger()
	}
	f.closers = append(f.closers, closer)
	return logger
}

func (f *LoggerFactory) effectiveLevel() slog.Level {
	if f.cliLevel != nil {
		return *f.cliLevel
	}
	return LevelFromString(f.config.Logging.Level)
}

// Close closes every file the factory opened.
func (f *LoggerFactory) Close() error {
	var firstErr error
	for _, c := range f.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	f.closers = nil
	return firstErr
}
