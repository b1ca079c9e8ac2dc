package slogutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Rotation bounds a log file under .bigo/logs. A write that would push
// the file past MaxBytes rolls it to <path>.1 first, shifting older
// generations up; generations beyond Keep are dropped. MaxBytes <= 0
// disables rolling.
type Rotation struct {
	MaxBytes int64
	Keep     int
}

// LogFile is an append-only io.WriteCloser with size-capped rotation.
// Long-lived serve and mcp sessions write through it so a chatty
// session cannot fill the workspace.
type LogFile struct {
	path string
	rot  Rotation

	mu   sync.Mutex
	file *os.File
	size int64
}

// OpenLogFile opens path for appending, creating parent directories as
// needed.
func OpenLogFile(path string, rot Rotation) (*LogFile, error) {
	lf := &LogFile{path: path, rot: rot}
	if err := lf.open(); err != nil {
		return nil, err
	}
	return lf, nil
}

func (l *LogFile) open() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}

	l.file = f
	l.size = info.Size()
	return nil
}

// Write implements io.Writer, rolling the file first when the write
// would exceed the cap. A failed roll does not block the write: losing
// the size bound beats losing log lines.
func (l *LogFile) Write(p []byte) (n int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.rot.MaxBytes > 0 && l.size+int64(len(p)) > l.rot.MaxBytes {
		_ = l.roll()
	}

	n, err = l.file.Write(p)
	l.size += int64(n)
	return n, err
}

// Close implements io.Closer.
func (l *LogFile) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// roll shifts mcp.log -> mcp.log.1 -> mcp.log.2 ... and reopens a
// fresh file.
func (l *LogFile) roll() error {
	if l.file != nil {
		if err := l.file.Close(); err != nil {
			return err
		}
	}

	for i := l.rot.Keep; i >= 1; i-- {
		if i == l.rot.Keep {
			_ = os.Remove(l.generation(i))
			continue
		}
		if _, err := os.Stat(l.generation(i)); err == nil {
			_ = os.Rename(l.generation(i), l.generation(i+1))
		}
	}

	if l.rot.Keep > 0 {
		_ = os.Rename(l.path, l.generation(1))
	} else {
		_ = os.Remove(l.path)
	}

	l.size = 0
	return l.open()
}

func (l *LogFile) generation(i int) string {
	return fmt.Sprintf("%s.%d", l.path, i)
}

// NewRotatingFileLogger creates a file-backed slog.Logger with the
// given rotation bounds. The returned closer owns the file handle.
func NewRotatingFileLogger(path string, level slog.Level, rot Rotation) (*slog.Logger, io.Closer, error) {
	if rot.MaxBytes <= 0 {
		return NewFileLogger(path, level)
	}

	lf, err := OpenLogFile(path, rot)
	if err != nil {
		return nil, nil, err
	}
	return NewLogger(lf, level), lf, nil
}
