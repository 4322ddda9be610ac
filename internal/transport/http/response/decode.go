package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/stormiq/signals-api/internal/domain"
)

// DecodeJSON reads exactly one JSON value from the request body into
// dst. Bodies with trailing content ({}{}) are rejected.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return domain.ErrInvalidJSON(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.ErrInvalidJSON(errors.New("trailing data after JSON body"))
	}
	return nil
}
