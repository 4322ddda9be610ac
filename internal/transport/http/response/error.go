package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stormiq/signals-api/internal/domain"
)

// ErrorBody is the error half of the wire format. Code is the stable
// machine string clients branch on; Message is safe to display.
type ErrorBody struct {
	Error ErrorPayload `json:"error"`
}

type ErrorPayload struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Meta      map[string]string `json:"meta,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

var kindStatus = map[domain.ErrKind]int{
	domain.KindValidation:     http.StatusBadRequest,
	domain.KindAuth:           http.StatusUnauthorized,
	domain.KindNotFound:       http.StatusNotFound,
	domain.KindConflict:       http.StatusConflict,
	domain.KindInfrastructure: http.StatusServiceUnavailable,
	domain.KindInternal:       http.StatusInternalServerError,
}

// WriteError renders err on the wire. Anything that is not a
// domain.Error collapses to a bare 500 so internals never leak.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	payload := ErrorPayload{
		Code:      "internal_error",
		Message:   "internal error",
		RequestID: RequestIDFromContext(r),
	}

	var de *domain.Error
	if errors.As(err, &de) {
		payload.Code = de.Code
		payload.Message = de.Message
		payload.Meta = de.Meta
		if s, ok := kindStatus[de.Kind]; ok {
			status = s
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorBody{Error: payload})
}
