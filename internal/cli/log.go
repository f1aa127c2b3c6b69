package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose || os.Getenv("DEBOUNCE_VERBOSE") != "" {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    os.Getenv("NO_COLOR") != "",
		TimeFormat: "15:04:05.000",
	}

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	logger.Debug().Msg("Running in verbose mode")

	return logger
}
