// Package httpserver contains HTTP handlers and middleware.
//
// It provides the REST API for profiles, job listings, application
// submissions and resume uploads. The package keeps HTTP concerns separate
// from the business logic in usecase.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/careerflowhq/careerflow-api/internal/domain"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, _ *http.Request, err error, details interface{}) {
	code := http.StatusInternalServerError
	codeStr := "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidJobID):
		code = http.StatusBadRequest
		codeStr = "INVALID_JOB_ID"
	case errors.Is(err, domain.ErrInvalidArgument):
		code = http.StatusBadRequest
		codeStr = "INVALID_ARGUMENT"
	case errors.Is(err, domain.ErrUserNotFound):
		code = http.StatusNotFound
		codeStr = "USER_NOT_FOUND"
	case errors.Is(err, domain.ErrJobNotFound):
		code = http.StatusNotFound
		codeStr = "JOB_NOT_FOUND"
	case errors.Is(err, domain.ErrApplicationNotFound):
		code = http.StatusNotFound
		codeStr = "APPLICATION_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
		codeStr = "NOT_FOUND"
	case errors.Is(err, domain.ErrNotOwner):
		code = http.StatusForbidden
		codeStr = "NOT_OWNER"
	case errors.Is(err, domain.ErrConflict):
		code = http.StatusConflict
		codeStr = "CONFLICT"
	case errors.Is(err, domain.ErrInternal):
		code = http.StatusInternalServerError
		codeStr = "INTERNAL"
	}
	writeJSON(w, code, errorEnvelope{Error: apiError{Code: codeStr, Message: err.Error(), Details: details}})
}
