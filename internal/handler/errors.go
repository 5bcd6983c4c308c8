package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"contentapi/internal/apperr"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeRepoError maps the repository error kinds to transport codes:
// validation and foreign-key failures are the caller's fault (400), a
// missing update target is 404, missing configuration is 503, anything
// else is a 500.
func writeRepoError(w http.ResponseWriter, err error) {
	var (
		validationErr *apperr.ValidationError
		fkErr         *apperr.ForeignKeyError
		notFoundErr   *apperr.NotFoundError
		configErr     *apperr.ConfigurationError
	)

	switch {
	case errors.As(err, &validationErr):
		WriteError(w, validationErr.Error(), http.StatusBadRequest)
	case errors.As(err, &fkErr):
		WriteError(w, fkErr.Error(), http.StatusBadRequest)
	case errors.As(err, &notFoundErr):
		WriteError(w, notFoundErr.Error(), http.StatusNotFound)
	case errors.As(err, &configErr):
		WriteError(w, configErr.Error(), http.StatusServiceUnavailable)
	default:
		WriteError(w, err.Error(), http.StatusInternalServerError)
	}
}
