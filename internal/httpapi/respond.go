// internal/httpapi/respond.go
// Package httpapi holds the response helpers shared by the HTTP handlers.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"libralend/internal/liberr"
	"libralend/internal/pool"
)

// WriteJSON encodes v as the response body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// WriteError maps service errors to HTTP status codes. Business rejections
// carry their human-readable reason; storage failures map to a generic 500
// so internals never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case liberr.IsValidation(err):
		WriteJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case liberr.IsNotFound(err):
		WriteJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case isConflict(err):
		WriteJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, pool.ErrClosed):
		WriteJSON(w, http.StatusServiceUnavailable, errorBody{Error: "server is shutting down"})
	default:
		WriteJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func isConflict(err error) bool {
	var ce *liberr.ConflictError
	return errors.As(err, &ce)
}
