package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger returns a stderr logger at the named level. Unknown names fall
// back to info; verbose forces debug.
func SetupLogger(level string, verbose bool) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: lvl == log.DebugLevel,
	})
}
