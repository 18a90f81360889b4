// Package logger builds the zerolog logger used across credsweep.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the level and destination of log output.
type Config struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	NoColor    bool
	// Console receives human-readable output when File is empty. Defaults to stderr.
	Console io.Writer
}

// ParseLevel parses a level name, defaulting to warn for empty input.
func ParseLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.WarnLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.WarnLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// New returns a logger writing JSON to a rotated file when cfg.File is set,
// otherwise console output.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("create log dir: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
		}
		l := zerolog.New(lj).Level(level).With().Timestamp().Logger()
		return l, lj, nil
	}
	out := cfg.Console
	if out == nil {
		out = os.Stderr
	}
	cw := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: cfg.NoColor}
	return zerolog.New(cw).Level(level).With().Timestamp().Logger(), nopCloser{}, nil
}

// Module tags l with a module name.
func Module(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("module", name).Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
