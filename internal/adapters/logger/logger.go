// Package logger implements a logging adapter using log/slog on top of a
// charmbracelet/log handler.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	charmlog "github.com/charmbracelet/log"
	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/deptree/internal/core/ports"
	"go.trai.ch/zerr"
)

// messager matches the Message() method of zerr.Error, which reports an
// error's own message without its cause chain.
type messager interface {
	Message() string
}

// verboseKeys are already part of the rendered message and are not repeated as attributes.
var verboseKeys = []string{"stderr", "fragment"}

// Logger implements ports.Logger.
type Logger struct {
	mu      sync.RWMutex
	handler *charmlog.Logger
	logger  *slog.Logger
}

// New creates a Logger writing to stderr at info level.
func New() ports.Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a Logger writing to w at info level.
func NewWithWriter(w io.Writer) *Logger {
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.InfoLevel,
		ReportTimestamp: false,
	})
	return &Logger{
		handler: handler,
		logger:  slog.New(handler),
	}
}

// SetOutput updates the logger's output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler.SetOutput(w)
}

// SetLevel changes the minimum emitted level. domain.LogLevel shares slog's numbering.
func (l *Logger) SetLevel(level domain.LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler.SetLevel(charmlog.Level(level))
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err with its cause chain and any zerr metadata as attributes.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error(formatError(err), metadataAttrs(err)...)
}

// formatError renders the chain of zerr messages as a main line followed by
// "Caused by:" entries. A non-zerr link ends the chain with its full Error().
func formatError(err error) string {
	var messages []string
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			messages = append(messages, current.Error())
			break
		}
		if msg := m.Message(); msg != "" {
			messages = append(messages, msg)
		}
		current = errors.Unwrap(current)
	}

	var lines []string
	for i, msg := range messages {
		msgLines := strings.Split(msg, "\n")
		if i == 0 {
			lines = append(lines, msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "  "+line)
			}
			continue
		}
		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
	}
	return strings.Join(lines, "\n")
}

// metadataAttrs collects zerr metadata along the chain, outermost value winning.
func metadataAttrs(err error) []any {
	meta := map[string]any{}
	for current := err; current != nil; current = errors.Unwrap(current) {
		z, ok := current.(*zerr.Error)
		if !ok {
			continue
		}
		for k, v := range z.Metadata() {
			if _, seen := meta[k]; !seen && !slices.Contains(verboseKeys, k) {
				meta[k] = v
			}
		}
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, meta[k]))
	}
	return attrs
}
