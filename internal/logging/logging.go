// Package logging builds the structured logger shared by the CLI, the
// pipeline and the MCP server.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// EnvLogLevel overrides the log level, as the server's historical debug switch.
const EnvLogLevel = "CHART_SEGMENTER_LOG_LEVEL"

// ParseLevel maps a level name to a slog.Level. The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// New returns a text logger writing to w at the given level.
//
// Stdout belongs to command output (and the MCP protocol in serve mode), so
// callers pass stderr.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}))
}
