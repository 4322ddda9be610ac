package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type HealthHandler interface {
	Root(w http.ResponseWriter, r *http.Request)
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
	UpdatePassword(w http.ResponseWriter, r *http.Request)
	Profile(w http.ResponseWriter, r *http.Request)
}

type SignalsHandler interface {
	Tickers(w http.ResponseWriter, r *http.Request)
	Signals(w http.ResponseWriter, r *http.Request)
	TopGainers(w http.ResponseWriter, r *http.Request)
	TopLosers(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	Users(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health  HealthHandler
	Auth    AuthHandler
	Signals SignalsHandler
	Admin   AdminHandler

	AuthMW func(http.Handler) http.Handler
	Extra  []func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Signals == nil {
		return nil, fmt.Errorf("nil Signals handler")
	}
	if deps.Admin == nil {
		return nil, fmt.Errorf("nil Admin handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}

	r := chi.NewRouter()
	for _, mw := range deps.Extra {
		r.Use(mw)
	}

	r.Get("/", deps.Health.Root)
	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", deps.Auth.Register)
		r.Post("/login", deps.Auth.Login)
		r.Post("/verify", deps.Auth.Verify)
		r.Post("/reset-password", deps.Auth.ResetPassword)
		r.With(deps.AuthMW).Post("/update-password", deps.Auth.UpdatePassword)
		r.With(deps.AuthMW).Get("/profile", deps.Auth.Profile)
	})

	r.Route("/stocks", func(r chi.Router) {
		r.Use(deps.AuthMW)

		r.Get("/tickers", deps.Signals.Tickers)
		r.Get("/signals", deps.Signals.Signals)
		r.Get("/top-gainers", deps.Signals.TopGainers)
		r.Get("/top-losers", deps.Signals.TopLosers)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(deps.AuthMW)

		r.Get("/users", deps.Admin.Users)
		r.Post("/users", deps.Admin.Users)
		r.Delete("/users/{userID}", deps.Admin.DeleteUser)
	})

	return r, nil
}
