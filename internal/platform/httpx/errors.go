package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer. Module packages wrap these so the
// boundary can map them to status codes without knowing the module.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

// RespondError maps domain errors to HTTP responses.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrConflict):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrValidation):
		Error(w, http.StatusBadRequest, err.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}
