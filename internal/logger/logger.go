package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

const (
	FormatAuto = "auto"
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures New
type Options struct {
	Level  string
	Format string // auto, text or json; auto picks text on a terminal
	// FilePath, when set, receives every record as JSON lines. An existing
	// file is kept under a timestamped name.
	FilePath string
	Console  io.Writer
}

type implLogger struct {
	logger *slog.Logger
}

// New creates a Logger writing to the console and, optionally, a JSONL file.
// The returned func closes the log file.
func New(opts Options) (Logger, func() error, error) {
	level := parseLevel(opts.Level)
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	handlers := []slog.Handler{consoleHandler(console, opts.Format, handlerOpts)}

	closeFn := func() error { return nil }
	if opts.FilePath != "" {
		f, err := openLogFile(opts.FilePath, time.Now())
		if err != nil {
			return nil, nil, err
		}
		// The file keeps debug detail regardless of console verbosity
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closeFn = f.Close
	}

	return &implLogger{
		logger: slog.New(newFanoutHandler(handlers...)),
	}, closeFn, nil
}

// NewNop returns a Logger that drops everything
func NewNop() Logger {
	return &implLogger{logger: slog.New(slog.DiscardHandler)}
}

func consoleHandler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	case FormatText:
		return slog.NewTextHandler(w, opts)
	}
	if f, ok := w.(*os.File); ok && !isTerminal(f.Fd()) {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// openLogFile moves an existing log aside as name_YYYYMMDD_HHMMSS.ext and
// creates a fresh one
func openLogFile(path string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, backupName(path, now)); err != nil {
			return nil, fmt.Errorf("rotate log file: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func backupName(path string, now time.Time) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s_%s%s", stem, now.Format("20060102_150405"), ext)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

func (l *implLogger) With(args ...any) Logger {
	return &implLogger{logger: l.logger.With(args...)}
}
