package httpapi

import (
	"errors"
	"net/http"

	"github.com/tallyfold/mis/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "") }
func notFound(w http.ResponseWriter) {
	writeErr(w, http.StatusNotFound, "not_found", "not_found")
}
func unprocessable(w http.ResponseWriter, msg, code string) {
	writeErr(w, http.StatusUnprocessableEntity, msg, code)
}

// writeServiceErr maps sentinel errors from the service to HTTP statuses.
func writeServiceErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		notFound(w)
	case errors.Is(err, errs.ErrUnknownHead):
		unprocessable(w, "unknown head", "unknown_head")
	case errors.Is(err, errs.ErrUnknownSubhead):
		unprocessable(w, "unknown subhead for head", "unknown_subhead")
	case errors.Is(err, errs.ErrBadPattern):
		unprocessable(w, "pattern does not compile", "bad_pattern")
	case errors.Is(err, errs.ErrNoHistory):
		writeErr(w, http.StatusConflict, "nothing to undo", "no_history")
	case errors.Is(err, errs.ErrUnprocessable):
		unprocessable(w, "unprocessable", "unprocessable")
	case errors.Is(err, errs.ErrInvalid):
		badRequest(w, "invalid")
	default:
		writeErr(w, http.StatusInternalServerError, "internal error", "")
	}
}
