package unittest

import (
	"flag"
	"io"
	"os"

	"github.com/rs/zerolog"
)

var verbose = flag.Bool("vv", false, "print debugging logs")

// Logger returns a debug level logger that discards its output unless the
// tests run with -vv.
func Logger() zerolog.Logger {
	return LoggerWithLevel(zerolog.DebugLevel)
}

func LoggerWithLevel(level zerolog.Level) zerolog.Logger {
	var writer io.Writer = io.Discard
	if *verbose {
		writer = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

