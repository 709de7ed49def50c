// Package web holds the JSON response helpers shared by all HTTP handlers.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/solestack/catalog-service/internal/apperr"
)

type errorBody struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error maps the error taxonomy onto HTTP statuses. Wrapped causes and
// internal identifiers never reach the client; callers log them.
func Error(w http.ResponseWriter, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		switch apperr.KindOf(ae) {
		case apperr.KindInvalidRequest:
			JSON(w, http.StatusBadRequest, errorBody{Error: ae.Message()})
			return
		case apperr.KindNotFound:
			JSON(w, http.StatusNotFound, errorBody{Error: ae.Message()})
			return
		default:
			JSON(w, http.StatusInternalServerError, errorBody{Error: ae.Message()})
			return
		}
	}
	JSON(w, http.StatusInternalServerError, errorBody{Error: "Server error"})
}
