package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Development gets a console
// writer; every other env writes JSON lines with timestamp and caller.
func Init(service, env, level string) {
	InitTo(os.Stdout, service, env, level)
}

// InitTo is Init with an explicit output.
func InitTo(w io.Writer, service, env, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if env == "development" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Str("service", service).
			Logger()
		return
	}
	log.Logger = zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Str("service", service).
		Logger()
}
