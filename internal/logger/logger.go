package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

func levelFromString(s string) (l slog.Level, ok bool) {
	switch strings.ToLower(s) {
	case "debug", "dbg":
		return slog.LevelDebug, true
	case "info", "inf":
		return slog.LevelInfo, true
	case "warn", "wrn":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// InitLogger makes a text handler writing to path the default slog logger.
// Unknown levels fall back to info. The returned closer closes the file.
func InitLogger(path, level string) (io.Closer, error) {
	loglevel, ok := levelFromString(level)

	logDir := filepath.Dir(path)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	// slog defaults to logging in the order of time, level, msg, and other attributes.
	handler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: loglevel})
	slog.SetDefault(slog.New(handler))

	if !ok && level != "" {
		slog.Warn("unknown log level, using info", "level", level)
	}
	return logFile, nil
}
