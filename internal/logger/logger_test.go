package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	zlog "github.com/rs/zerolog/log"

	appctx "github.com/stormiq/signals-api/internal/pkg/context"
)

func TestInitWithWriter_DefaultsToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	var buf bytes.Buffer
	InitWithWriter(&buf)

	if Logger.GetLevel().String() != "info" {
		t.Fatalf("expected level=info, got %s", Logger.GetLevel().String())
	}
	if zlog.Logger.GetLevel().String() != "info" {
		t.Fatalf("expected global level=info, got %s", zlog.Logger.GetLevel().String())
	}

	Logger.Info().Msg("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected output to contain message, got %q", buf.String())
	}
}

func TestInitWithWriter_JSONFormat(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	InitWithWriter(&buf)

	Logger.Debug().Msg("wire-check")
	if !strings.Contains(buf.String(), `"message":"wire-check"`) {
		t.Fatalf("expected JSON output, got %q", buf.String())
	}
}

func TestWithCtx_ChainsAndCarriesRequestID(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	InitWithWriter(&buf)

	ctx := appctx.WithRequestID(context.Background(), "req-42")

	// Chained directly off the return value, as call sites do.
	WithCtx(ctx).Info().Msg("stamped")
	if !strings.Contains(buf.String(), `"request_id":"req-42"`) {
		t.Fatalf("expected request_id in output, got %q", buf.String())
	}

	buf.Reset()
	WithCtx(context.Background()).Info().Msg("plain")
	if strings.Contains(buf.String(), "request_id") {
		t.Fatalf("expected no request_id without one in ctx, got %q", buf.String())
	}
}
