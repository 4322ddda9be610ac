package http_handlers

import (
	"net/http"

	"github.com/stormiq/signals-api/internal/application/auth"
	"github.com/stormiq/signals-api/internal/domain"
	"github.com/stormiq/signals-api/internal/logger"
	"github.com/stormiq/signals-api/internal/transport/http/dto"
	"github.com/stormiq/signals-api/internal/transport/http/middleware"
	"github.com/stormiq/signals-api/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", res.User.ID).
		Str("email", res.User.Email).
		Msg("user_registered")

	response.Created(w,
		dto.NewProfileView(res.User, true),
		dto.SessionMeta{AccessToken: res.SessionToken},
	)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", res.User.ID).
		Msg("user_logged_in")

	response.OKWithMeta(w,
		dto.NewProfileView(res.User, true),
		dto.SessionMeta{AccessToken: res.SessionToken},
	)
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Verify(r.Context(), req.Token)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", res.User.ID).
		Msg("email_verified")

	response.OKWithMeta(w,
		dto.NewProfileView(res.User, true),
		dto.SessionMeta{AccessToken: res.SessionToken},
	)
}

// ResetPassword serves both reset phases on one route. A body with token
// and password completes a reset; a body with an email starts one.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	switch {
	case req.IsConfirm():
		res, err := h.svc.ResetPassword(r.Context(), req.Token, req.Password)
		if err != nil {
			response.WriteError(w, r, err)
			return
		}

		logger.WithCtx(r.Context()).Info().
			Int64("user_id", res.User.ID).
			Msg("password_reset_completed")

		response.OKWithMeta(w,
			dto.NewProfileView(res.User, true),
			dto.SessionMeta{AccessToken: res.SessionToken},
		)

	case req.IsInit():
		if err := h.svc.InitPasswordReset(r.Context(), req.Email); err != nil {
			response.WriteError(w, r, err)
			return
		}

		logger.WithCtx(r.Context()).Info().Msg("password_reset_requested")

		response.WriteJSON(w, http.StatusOK, struct{}{})

	default:
		response.WriteError(w, r, domain.ErrMissingField("email"))
	}
}

// UpdatePassword handles POST /auth/update-password. The endpoint is
// reserved for authenticated password changes but not implemented yet.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, struct{}{})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrSessionInvalid())
		return
	}

	user, err := h.svc.CurrentUser(r.Context(), identity)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	if user == nil {
		response.WriteError(w, r, domain.ErrSessionInvalid())
		return
	}

	response.OK(w, dto.NewProfileView(*user, true))
}
