package config

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultLogLevel is used when FPS_LOG_LEVEL is unset or not a level name.
const DefaultLogLevel = log.InfoLevel

// NewLogger creates the process logger writing to w. The level comes from
// FPS_LOG_LEVEL (debug, info, warn, error).
func NewLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(strings.ToLower(GetEnv("FPS_LOG_LEVEL", "")))
	if err != nil {
		level = DefaultLogLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}
