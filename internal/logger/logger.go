// Package logger configures the zerolog logger shared by both tools.
// Logs always go to stderr; stdout is reserved for the JSON result.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls logger construction.
type Options struct {
	Level   string
	Verbose bool
	NoColor bool
}

// New builds a console logger writing to w.
func New(w io.Writer, opts Options) zerolog.Logger {
	level := ParseLevel(opts.Level)
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    opts.NoColor || color.NoColor,
		TimeFormat: "15:04:05",
	}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// Init installs a stderr logger as the global zerolog logger.
func Init(opts Options) {
	log.Logger = New(os.Stderr, opts)
}

// ParseLevel maps a level name to a zerolog level, defaulting to warn.
func ParseLevel(name string) zerolog.Level {
	if name == "" {
		return zerolog.WarnLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}
