// Package logging builds the charm logger behind the default slog handler.
// Everything is configured from ADHOC_LOG_* environment variables.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Environment variables read by NewLogger.
const (
	EnvLevel  = "ADHOC_LOG_LEVEL"
	EnvPrefix = "ADHOC_LOG_PREFIX"
	EnvFormat = "ADHOC_LOG_FORMAT"
	EnvToFile = "ADHOC_LOG_TO_FILE"
	EnvDir    = "ADHOC_LOG_DIR"
)

const defaultPrefix = "adhoc "

// LoggerCloser is a charm logger that owns its output when that output is a file.
type LoggerCloser struct {
	*log.Logger
	closer io.Closer
}

// Close closes the log file. Standard streams are never closed.
func (lc *LoggerCloser) Close() error {
	if lc.closer == nil {
		return nil
	}
	err := lc.closer.Close()
	lc.closer = nil
	return err
}

// ParseLevel maps a level name to a charm log level. Unknown names give info.
func ParseLevel(name string) log.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter maps "json" and "logfmt" to their charm formatters; anything
// else is the human readable text format.
func ParseFormatter(name string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// NewLoggerWithWriter builds a logger writing to w. w is closed by Close unless it
// is stdout or stderr.
func NewLoggerWithWriter(w io.Writer) *LoggerCloser {
	prefix := os.Getenv(EnvPrefix)
	if prefix == "" {
		prefix = defaultPrefix
	}

	lg := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           ParseLevel(os.Getenv(EnvLevel)),
		Formatter:       ParseFormatter(os.Getenv(EnvFormat)),
		Prefix:          prefix,
	})

	lc := &LoggerCloser{Logger: lg}
	if c, ok := w.(io.Closer); ok && w != os.Stderr && w != os.Stdout {
		lc.closer = c
	}
	return lc
}

// LogFileName is the debug log written for a run started at t.
func LogFileName(t time.Time) string {
	return fmt.Sprintf("adhoc-%s-debug.log", t.Format("20060102-150405"))
}

// NewLogger writes to stderr, or to a timestamped file in ADHOC_LOG_DIR (default
// the working directory) when ADHOC_LOG_TO_FILE is "1". A file that cannot be
// opened falls back to stderr.
func NewLogger() *LoggerCloser {
	if os.Getenv(EnvToFile) != "1" {
		return NewLoggerWithWriter(os.Stderr)
	}

	dir := os.Getenv(EnvDir)
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return NewLoggerWithWriter(os.Stderr)
		}
	}
	f, err := os.OpenFile(filepath.Join(dir, LogFileName(time.Now())), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return NewLoggerWithWriter(os.Stderr)
	}
	return NewLoggerWithWriter(f)
}

// IsDebug reports whether ADHOC_LOG_LEVEL asks for debug output.
func IsDebug() bool {
	return ParseLevel(os.Getenv(EnvLevel)) == log.DebugLevel
}
