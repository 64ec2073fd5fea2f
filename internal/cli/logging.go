package cli

import (
	"io"

	"github.com/rs/zerolog"
)

// NewLogger returns a human-readable logger writing to out at level. Unknown
// levels fall back to info.
func NewLogger(out io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
