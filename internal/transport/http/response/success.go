package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the success wire format. Data carries the resource;
// Meta carries out-of-band values such as the session token.
type Envelope struct {
	Data any `json:"data"`
	Meta any `json:"meta,omitempty"`
}

// WriteJSON writes v with the given status. An already-set
// Content-Type wins, so plain-text handlers keep theirs.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Data: data})
}

func OKWithMeta(w http.ResponseWriter, data, meta any) {
	WriteJSON(w, http.StatusOK, Envelope{Data: data, Meta: meta})
}

// Created is the 201 variant used by registration.
func Created(w http.ResponseWriter, data, meta any) {
	WriteJSON(w, http.StatusCreated, Envelope{Data: data, Meta: meta})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
