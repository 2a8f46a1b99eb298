// Package logger builds charmbracelet/log loggers for tagserve's packages.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a timestamped stderr logger that follows the global level.
// Stdout stays free for the IPC stream.
func New(prefix string) *log.Logger {
	return NewWithConfig(os.Stderr, prefix, log.GetLevel(), false, true, log.TextFormatter)
}

// NewWriter creates a bare logger on w for user-facing output such as the
// interactive prompt. Print calls on it are emitted at any level.
func NewWriter(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:    prefix,
		Level:     log.GetLevel(),
		Formatter: log.TextFormatter,
	})
}

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(w io.Writer, prefix string, level log.Level, caller bool, showTimestamp bool, f log.Formatter) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       f,
	})
}
