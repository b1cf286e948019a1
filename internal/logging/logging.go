// Package logging sets up the process-wide charm logger. The terminal belongs
// to the TUI, so records go to a file.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"searchbox/internal/config"
)

// New creates a logger writing to w at level.
func New(w io.Writer, level log.Level, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
	})
}

// Setup opens the configured log file, installs a logger on it as the default
// and returns the file so the caller can close it on exit. An unknown level
// falls back to info. When the file cannot be opened the default logger is
// silenced, since the terminal belongs to the TUI.
func Setup(cfg config.LogSettings) (io.Closer, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetDefault(New(io.Discard, level, "searchbox"))
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.SetDefault(New(f, level, "searchbox"))
	return f, nil
}
