// Package logging sets up the launcher's own diagnostic log. The terminal
// belongs to the UI while it runs, so records go to a rotating file instead
// of stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults, following lumberjack semantics.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 14
)

// Options describes where diagnostic records are written.
type Options struct {
	Path       string // empty disables file output
	Level      slog.Level
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger bundles the slog.Logger with the writer backing it so the caller
// can close the file on exit.
type Logger struct {
	*slog.Logger
	closer io.Closer
}

// New opens the log file described by opts. When the file cannot be created
// the returned logger discards everything and the error explains why; the
// launcher keeps running either way.
func New(opts Options) (*Logger, error) {
	if opts.Path == "" {
		return Discard(), nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return Discard(), fmt.Errorf("create log dir: %w", err)
	}

	w := &lj.Logger{
		Filename:   opts.Path,
		MaxSize:    valOr(opts.MaxSizeMB, DefaultMaxSizeMB),
		MaxBackups: valOr(opts.MaxBackups, DefaultMaxBackups),
		MaxAge:     valOr(opts.MaxAgeDays, DefaultMaxAgeDays),
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: opts.Level})
	return &Logger{Logger: slog.New(h), closer: w}, nil
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Close flushes and closes the underlying file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func valOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
