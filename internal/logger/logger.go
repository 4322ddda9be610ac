package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	appctx "github.com/stormiq/signals-api/internal/pkg/context"
)

// Logger is the process-wide root; request-scoped children derive
// from it via WithCtx.
var Logger zerolog.Logger

func Init() {
	InitWithWriter(os.Stdout)
}

// InitWithWriter exists so tests can capture output.
func InitWithWriter(w io.Writer) {
	level, err := zerolog.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}

	// Console rendering is the dev default; deployments set
	// LOG_FORMAT=json for machine-readable lines.
	if envOr("LOG_FORMAT", "console") != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	Logger = zerolog.New(w).With().Timestamp().Logger().Level(level)
	zlog.Logger = Logger
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// WithCtx returns a child logger carrying the request ID from ctx,
// when one is present. Returned as a pointer so call sites can chain
// level methods directly.
func WithCtx(ctx context.Context) *zerolog.Logger {
	if id := appctx.GetRequestID(ctx); id != "" {
		lg := Logger.With().Str("request_id", id).Logger()
		return &lg
	}
	return &Logger
}
