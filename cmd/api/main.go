package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/stormiq/signals-api/internal/bootstrap"
	"github.com/stormiq/signals-api/internal/logger"
)

// In-flight requests get this long to drain before the listener is
// closed hard.
const shutdownGrace = 15 * time.Second

// apiServer is the slice of *http.Server that run needs. Tests swap in
// a stub to drive the crash and signal paths without binding a port.
type apiServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
	Close() error
	Addr() string
}

type liveServer struct{ *http.Server }

func (s liveServer) Addr() string { return s.Server.Addr }

// buildFunc assembles the server plus a teardown for its resources
// (db pool, redis client, rabbit channel).
type buildFunc func() (apiServer, func(), error)

func run(build buildFunc, sigCh <-chan os.Signal, lg zerolog.Logger) int {
	srv, teardown, err := build()
	if err != nil {
		lg.Error().Err(err).Msg("startup failed")
		return 1
	}
	defer teardown()

	crashed := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", srv.Addr()).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			crashed <- err
		}
	}()

	select {
	case sig := <-sigCh:
		lg.Info().Str("signal", sig.String()).Msg("stopping")
	case err := <-crashed:
		lg.Error().Err(err).Msg("listener failed")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lg.Error().Err(err).Msg("drain timed out, closing")
		_ = srv.Close()
	}

	lg.Info().Msg("stopped")
	return 0
}

func main() {
	logger.Init()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	os.Exit(run(func() (apiServer, func(), error) {
		srv, teardown, err := bootstrap.NewServer()
		if err != nil {
			return nil, nil, err
		}
		return liveServer{srv}, teardown, nil
	}, sigCh, zlog.Logger))
}
