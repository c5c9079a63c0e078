// Package logger configures logrus for a process whose terminal belongs to
// the TUI: entries go to a file or nowhere, never to stdout or stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = logrus.InfoLevel

// Config selects where log entries go and which are kept.
type Config struct {
	Level string // panic, fatal, error, warn, info, debug, trace
	File  string // empty discards all entries
	JSON  bool
}

// ParseLevel parses a level name case-insensitively. An empty name yields
// DefaultLevel.
func ParseLevel(name string) (logrus.Level, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultLevel, nil
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return DefaultLevel, fmt.Errorf("logger: %w", err)
	}
	return level, nil
}

// New returns a logger for cfg and a function that releases its file.
// The log file and its directory are created when missing.
func New(cfg Config) (*logrus.Logger, func() error, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	l := logrus.New()
	l.SetLevel(level)
	if cfg.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	if cfg.File == "" {
		l.SetOutput(io.Discard)
		return l, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0750); err != nil {
		return nil, nil, fmt.Errorf("logger: create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: open %s: %w", cfg.File, err)
	}
	l.SetOutput(f)
	return l, f.Close, nil
}

// Discard returns a logger that drops every entry.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
