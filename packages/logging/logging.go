// Package logging builds the hclog loggers used across barong.
package logging

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// Name is the logger name shown in every line.
const Name = "barong"

// LevelFor maps a -v count to a log level.
func LevelFor(verbosity int) hclog.Level {
	switch {
	case verbosity <= 0:
		return hclog.Warn
	case verbosity == 1:
		return hclog.Info
	case verbosity == 2:
		return hclog.Debug
	default:
		return hclog.Trace
	}
}

// New creates a logger writing to w. A nil writer discards everything.
func New(verbosity int, w io.Writer) hclog.Logger {
	if w == nil {
		w = io.Discard
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   Name,
		Level:  LevelFor(verbosity),
		Output: w,
	})
}
