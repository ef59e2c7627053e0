// Package logging builds the process logger and adapts it to the small
// logger interfaces other packages accept.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the process logger writing human-readable output to w at the
// given level. Unknown level strings fall back to info.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// NewDefault returns the process logger on stderr.
func NewDefault(level string) zerolog.Logger {
	return New(os.Stderr, level)
}
