package middleware

import (
	"net/http"

	"github.com/google/uuid"

	appctx "github.com/stormiq/signals-api/internal/pkg/context"
)

const HeaderXRequestID = "X-Request-Id"

// RequestID stamps each request with an id and echoes it on the
// response so clients can quote it in bug reports. A caller-supplied
// id is kept.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderXRequestID, id)

		next.ServeHTTP(w, r.WithContext(appctx.WithRequestID(r.Context(), id)))
	})
}
