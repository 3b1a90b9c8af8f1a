// Package logging builds the *slog.Logger used by the weights engine and
// the command-line tool.
//
// Level and format come from Config, with the LOG_LEVEL and LOG_FORMAT
// environment variables as overrides. When Config.File is set, records go to
// a size-rotated file (lumberjack) instead of stderr. Library code never
// calls Setup; it receives a logger through options and defaults to Discard.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/natefinch/lumberjack"
)

// Config selects level, format and destination. It decodes from the
// [logging] table of the weights configuration file.
type Config struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`

	// File enables rotation into this path.
	File    string `toml:"file"`
	MaxSize int    `toml:"max_size"` // megabytes
	MaxAge  int    `toml:"max_age"`  // days
}

var (
	mu            sync.Mutex
	defaultLogger *slog.Logger
	rotating      *lumberjack.Logger
)

// ParseLevel maps debug/info/warn/error onto slog levels; anything else is Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// New returns a logger writing to w according to c, without touching the
// process default.
func New(w io.Writer, c Config) *slog.Logger {
	level, format := c.Level, c.Format
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	if env := os.Getenv("LOG_FORMAT"); env != "" {
		format = env
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h)
}

// Setup installs the process-wide logger described by c and returns it.
// A previously opened rotating file is closed first.
func Setup(c Config) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if rotating != nil {
		_ = rotating.Close()
		rotating = nil
	}
	var w io.Writer = os.Stderr
	if c.File != "" {
		rotating = &lumberjack.Logger{
			Filename: c.File,
			MaxSize:  c.MaxSize,
			MaxAge:   c.MaxAge,
		}
		w = rotating
	}
	defaultLogger = New(w, c)

	return defaultLogger
}

// L returns the logger installed by Setup, setting up a stderr logger from
// the environment on first use.
func L() *slog.Logger {
	mu.Lock()
	l := defaultLogger
	mu.Unlock()
	if l == nil {
		return Setup(Config{})
	}

	return l
}

// Close flushes and closes the rotating file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if rotating == nil {
		return nil
	}
	err := rotating.Close()
	rotating = nil

	return err
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// OrDiscard returns l, or Discard when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}

	return l
}
