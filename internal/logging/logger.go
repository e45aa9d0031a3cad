package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Controls the appearance and verbosity of diagnostic output
type Options struct {

	// Log at debug level rather than info level
	Debug bool

	// Disable ANSI colour codes
	NoColor bool

	// Prefix each line with a timestamp
	Timestamp bool
}

// Creates a human-readable logger for the diagnostic stream
func New(out io.Writer, app string, opts Options) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    opts.NoColor,
		TimeFormat: time.RFC3339,
	}
	if !opts.Timestamp {
		output.PartsExclude = []string{zerolog.TimestampFieldName}
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
}
