package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Message prefixes for console lines
const (
	warnPrefix  = "⚠️  "
	errorPrefix = "❌ "
	tipPrefix   = "💡 "
)

// Log rotation defaults, overridable through TREEMERGE_LOG_MAX_* variables
const (
	defaultLogMaxSizeMB  = 1
	defaultLogMaxBackups = 2
	defaultLogMaxAgeDays = 30
)

// consoleHandler prints the bare message of each record. Debug records are
// only printed in debug mode, and nothing is printed while quiet.
type consoleHandler struct {
	out   io.Writer
	debug bool
	quiet *bool
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level > slog.LevelDebug || h.debug
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if *h.quiet {
		return nil
	}
	_, err := fmt.Fprintln(h.out, record.Message)
	return err
}

func (h *consoleHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *consoleHandler) WithGroup(_ string) slog.Handler { return h }

// fanout sends each record to every handler that accepts its level
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range f {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}

// envInt reads a positive (or, with allowZero, non-negative) integer from
// the environment, falling back when unset or invalid
func envInt(name string, fallback int, allowZero bool) int {
	n, err := strconv.Atoi(os.Getenv(name))
	if err != nil || n < 0 || (n == 0 && !allowZero) {
		return fallback
	}
	return n
}

// rotatingFile opens the rotating log file at path
func rotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    envInt("TREEMERGE_LOG_MAX_SIZE", defaultLogMaxSizeMB, false),
		MaxBackups: envInt("TREEMERGE_LOG_MAX_BACKUPS", defaultLogMaxBackups, true),
		MaxAge:     envInt("TREEMERGE_LOG_MAX_AGE", defaultLogMaxAgeDays, false),
	}
}

// Splog writes user-facing output to the console and, optionally, every
// message with a timestamp to a rotating log file.
type Splog struct {
	logger  *slog.Logger
	out     io.Writer
	logFile io.WriteCloser
	quiet   bool
}

// NewSplog creates a console-only splog on stdout.
// Debug lines are printed when the DEBUG environment variable is set.
func NewSplog() *Splog {
	splog, _ := NewSplogWithConfig("")
	return splog
}

// NewSplogWithWriter creates a console-only splog writing to w
func NewSplogWithWriter(w io.Writer) *Splog {
	splog, _ := newSplog(w, "")
	return splog
}

// NewSplogWithConfig creates a splog on stdout with optional file logging
func NewSplogWithConfig(logFilePath string) (*Splog, error) {
	return newSplog(os.Stdout, logFilePath)
}

// NewSplogWithOutput creates a splog writing console output to w, with
// optional file logging
func NewSplogWithOutput(w io.Writer, logFilePath string) (*Splog, error) {
	return newSplog(w, logFilePath)
}

func newSplog(out io.Writer, logFilePath string) (*Splog, error) {
	splog := &Splog{out: out}
	handlers := fanout{&consoleHandler{
		out:   out,
		debug: os.Getenv("DEBUG") != "",
		quiet: &splog.quiet,
	}}

	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file := rotatingFile(logFilePath)
		splog.logFile = file
		handlers = append(handlers, slog.NewTextHandler(file, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					a.Value = slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))
				}
				return a
			},
		}))
	}

	splog.logger = slog.New(handlers)
	return splog, nil
}

// SetQuiet mutes console output. The log file still records everything.
func (s *Splog) SetQuiet(quiet bool) {
	s.quiet = quiet
}

// IsQuiet reports whether console output is muted
func (s *Splog) IsQuiet() bool {
	return s.quiet
}

// logf formats and logs one message. A format without args is used as is,
// so messages containing '%' can be passed through untouched.
func (s *Splog) logf(level slog.Level, prefix, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	s.logger.Log(context.Background(), level, prefix+msg)
}

// Info writes an info message
func (s *Splog) Info(format string, args ...interface{}) {
	s.logf(slog.LevelInfo, "", format, args)
}

// Warn writes a warning message
func (s *Splog) Warn(format string, args ...interface{}) {
	s.logf(slog.LevelWarn, warnPrefix, format, args)
}

// Error writes an error message
func (s *Splog) Error(format string, args ...interface{}) {
	s.logf(slog.LevelError, errorPrefix, format, args)
}

// Debug writes a debug message
func (s *Splog) Debug(format string, args ...interface{}) {
	s.logf(slog.LevelDebug, "", format, args)
}

// Tip writes a hint about what to do next
func (s *Splog) Tip(format string, args ...interface{}) {
	s.logf(slog.LevelInfo, tipPrefix, format, args)
}

// Page writes a pre-rendered block of output to the console only
func (s *Splog) Page(content string) {
	if s.quiet {
		return
	}
	_, _ = fmt.Fprint(s.out, content)
}

// Newline writes an empty console line
func (s *Splog) Newline() {
	s.Page("\n")
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logFile == nil {
		return nil
	}
	return s.logFile.Close()
}
