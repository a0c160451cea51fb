package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/evernight/auth/internal/requestid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var Logger = zerolog.Nop()

// Init builds the global logger. level is a zerolog level name ("info" when
// empty or unknown); format "json" selects JSON output, anything else the
// console writer.
func Init(level, format string) {
	Logger = New(os.Stdout, level, format)
	log.Logger = Logger
}

func New(out io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(out).With().
		Timestamp().
		Logger().
		Level(lvl)
}

// WithCtx returns the global logger carrying the request id of ctx, if any.
func WithCtx(ctx context.Context) *zerolog.Logger {
	l := Logger
	if rid := requestid.GetRequestID(ctx); rid != "" {
		l = l.With().Str("request_id", rid).Logger()
	}
	return &l
}
