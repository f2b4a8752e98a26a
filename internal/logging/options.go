package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log output formats accepted by Options.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options configures a zerolog-backed Logger.
type Options struct {
	// Writer receives log output. Defaults to os.Stderr.
	Writer io.Writer
	// Component is attached to every entry as the "component" field.
	Component string
	// Level is a zerolog level name ("debug", "info", "warn", ...). Defaults to info.
	Level string
	// Format is FormatConsole (human readable) or FormatJSON.
	Format string
	// NoColor disables ANSI colors in console output.
	NoColor bool
}

// New builds a ZerologAdapter from Options. The level is applied to the
// returned logger only; the zerolog global level is left untouched.
func New(opts Options) (*ZerologAdapter, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	if !strings.EqualFold(opts.Format, FormatJSON) {
		w = zerolog.ConsoleWriter{Out: w, NoColor: opts.NoColor, TimeFormat: time.TimeOnly}
	}
	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if opts.Component != "" {
		ctx = ctx.Str("component", opts.Component)
	}
	return &ZerologAdapter{logger: ctx.Logger()}, nil
}
