package internal

import (
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger creates a named logger for one process component. Level comes
// from the LOG_LEVEL environment variable and defaults to info.
func NewLogger(component string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           levelFromEnv(),
		Prefix:          component,
	})
}

func levelFromEnv() log.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "ERROR":
		return log.ErrorLevel
	case "WARN":
		return log.WarnLevel
	case "INFO":
		return log.InfoLevel
	case "DEBUG":
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}
