// Package logging builds the structured loggers used across orbsim.
package logging

import (
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New returns a logfmt logger on w filtered at lvl. Unknown levels fall
// back to info.
func New(w io.Writer, lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	return level.NewFilter(logger, allow(lvl))
}

// Nop discards everything.
func Nop() log.Logger { return log.NewNopLogger() }

// Subsystem tags every record from logger with a subsys key.
func Subsystem(logger log.Logger, name string) log.Logger {
	if logger == nil {
		logger = Nop()
	}
	return log.With(logger, "subsys", name)
}

func allow(lvl string) level.Option {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return level.AllowDebug()
	case "warn", "warning":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	case "none", "off":
		return level.AllowNone()
	default:
		return level.AllowInfo()
	}
}
