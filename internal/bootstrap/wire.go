// Package bootstrap assembles the API server: config, postgres repos,
// the optional redis signal cache, the rabbit notifier, services,
// handlers and the router. Every external constructor arrives through
// Deps so tests can swap in fakes.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/stormiq/signals-api/internal/application/auth"
	"github.com/stormiq/signals-api/internal/application/signals"
	"github.com/stormiq/signals-api/internal/config"
	"github.com/stormiq/signals-api/internal/infrastructure/db/postgres"
	"github.com/stormiq/signals-api/internal/infrastructure/memory"
	"github.com/stormiq/signals-api/internal/infrastructure/messaging/rabbitmq"
	"github.com/stormiq/signals-api/internal/infrastructure/redis"
	"github.com/stormiq/signals-api/internal/infrastructure/security"
	"github.com/stormiq/signals-api/internal/logger"
	http_handlers "github.com/stormiq/signals-api/internal/transport/http/handlers"
	"github.com/stormiq/signals-api/internal/transport/http/middleware"
	"github.com/stormiq/signals-api/internal/transport/http/response"
	"github.com/stormiq/signals-api/internal/transport/http/router"
)

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string, debug bool) (DBCloser, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewNotifier func(rabbitURL, webAppURL string) (auth.Notifier, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

// NewServer wires the production dependency set.
func NewServer() (*http.Server, func(), error) {
	return newServer(prodDeps())
}

// NewServerWithDeps is the test entry point.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

func newServer(deps Deps) (*http.Server, func(), error) {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return nil, nil, err
	}

	// Resources close in reverse acquisition order on teardown.
	closers := []func(){func() { _ = db.Close() }}
	fail := func(err error) (*http.Server, func(), error) {
		closeAll(closers)
		return nil, nil, err
	}

	sqlDB, ok := db.(*sql.DB)
	if !ok {
		return fail(errors.New("bootstrap: NewDB did not return *sql.DB"))
	}

	userRepo := postgres.NewUserRepo(sqlDB)
	signalRepo := postgres.NewSignalRepo(sqlDB)

	// The signal read path runs straight off postgres unless redis is
	// configured and answers a ping. A down cache is a log line, not a
	// startup failure.
	var signalSource signals.SignalRepo = signalRepo
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; signal cache disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			closers = append(closers, func() { _ = c.Close() })
			if rc, ok := c.(*redis.Client); ok {
				signalSource = redis.NewCachedSignalRepo(signalRepo, rc, cfg.SignalCacheTTL)
			}
		}
	}

	// Email events need rabbit outside dev; dev falls back to a noop
	// notifier so the service still starts on a laptop.
	var notifier auth.Notifier
	switch {
	case deps.NewNotifier != nil && cfg.RabbitURL != "":
		notifier, err = deps.NewNotifier(cfg.RabbitURL, cfg.WebAppURL)
		if err != nil {
			if cfg.Env != "dev" {
				return fail(err)
			}
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop notifier")
			notifier = memory.NewNoopNotifier()
		}
	case cfg.Env != "dev":
		return fail(errors.New("bootstrap: RABBIT_URL is required outside dev"))
	default:
		notifier = memory.NewNoopNotifier()
	}

	if c, ok := notifier.(interface{ Close() error }); ok {
		closers = append(closers, func() { _ = c.Close() })
	}

	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	authSvc := auth.NewService(userRepo, hasher, signer, notifier, auth.Config{
		SessionTTL:            cfg.SessionTokenTTL,
		VerifyEmailTokenTTL:   cfg.VerifyEmailTokenTTL,
		PasswordResetTokenTTL: cfg.PasswordResetTokenTTL,
		RequireVerifiedEmail:  cfg.RequireVerifiedEmail,
	})
	signalSvc := signals.NewService(signalSource)

	mux, err := deps.NewRouter(router.Deps{
		Health:  http_handlers.NewHealthHandler(sqlDB),
		Auth:    http_handlers.NewAuthHandler(authSvc),
		Signals: http_handlers.NewSignalsHandler(signalSvc),
		Admin:   http_handlers.NewAdminHandler(),
		AuthMW:  middleware.Auth(signer, response.WriteError),
		Extra: []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.CORS(cfg.CORSAllowedOrigins),
		},
	})
	if err != nil {
		return fail(err)
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return srv, func() { closeAll(closers) }, nil
}

func prodDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string, debug bool) (DBCloser, error) {
			return config.NewDB(addr, debug)
		},
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewNotifier: func(url, webAppURL string) (auth.Notifier, error) {
			return rabbitmq.NewNotifier(url, webAppURL)
		},
		NewRouter: router.New,
	}
}

func closeAll(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
