package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/kingrea/casebook/internal/config"
)

// Logger writes diagnostics to .casebook/logs/casebook.log so users can
// inspect store failures and reloads after the TUI has closed.
type Logger struct {
	base *log.Logger
	file *os.File
}

// New creates (or reuses) the log file for the current project directory.
func New(projectDir string) (*Logger, error) {
	logDir := filepath.Join(projectDir, config.Dir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	path := filepath.Join(logDir, "casebook.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{base: newBase(f), file: f}, nil
}

// NewWriter logs to w. Used by commands that print diagnostics to stderr.
func NewWriter(w io.Writer) *Logger {
	return &Logger{base: newBase(w)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWriter(io.Discard)
}

func newBase(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "casebook",
	})
	if strings.TrimSpace(os.Getenv("CASEBOOK_DEBUG")) != "" {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// Base exposes the structured logger for packages that take a *log.Logger.
func (l *Logger) Base() *log.Logger {
	if l == nil {
		return nil
	}
	return l.base
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Printf writes a single formatted line at info level.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.base == nil {
		return
	}
	l.base.Info(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// Info logs msg with key/value pairs.
func (l *Logger) Info(msg string, keyvals ...any) {
	if l == nil || l.base == nil {
		return
	}
	l.base.Info(msg, keyvals...)
}

// Warn logs msg with key/value pairs.
func (l *Logger) Warn(msg string, keyvals ...any) {
	if l == nil || l.base == nil {
		return
	}
	l.base.Warn(msg, keyvals...)
}

// Error logs msg with key/value pairs.
func (l *Logger) Error(msg string, keyvals ...any) {
	if l == nil || l.base == nil {
		return
	}
	l.base.Error(msg, keyvals...)
}
