package middleware

import (
	"net/http"
	"strings"

	"github.com/stormiq/signals-api/internal/domain"
)

// SessionVerifier validates a session token and returns the identity it
// was issued for.
type SessionVerifier interface {
	VerifySession(token string) (string, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Auth verifies Authorization: Bearer <session_token> and injects the
// account identity into the request context.
func Auth(verifier SessionVerifier, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				writeErr(w, r, domain.ErrSessionMissing())
				return
			}

			parts := strings.SplitN(h, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeErr(w, r, domain.ErrSessionInvalid())
				return
			}

			raw := strings.TrimSpace(parts[1])
			if raw == "" {
				writeErr(w, r, domain.ErrSessionInvalid())
				return
			}

			identity, err := verifier.VerifySession(raw)
			if err != nil {
				writeErr(w, r, err)
				return
			}
			if strings.TrimSpace(identity) == "" {
				writeErr(w, r, domain.ErrSessionInvalid())
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
