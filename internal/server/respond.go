// internal/server/respond.go
package server

import (
	"encoding/json"
	"net/http"

	"simmer-assistant/internal/common/errors"
	"simmer-assistant/internal/common/validation"
)

type errorBody struct {
	Code    errors.ErrorCode              `json:"code"`
	Message string                        `json:"message"`
	Errors  []validation.ValidationError  `json:"errors,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeStandardError maps an application error code to its HTTP status.
func writeStandardError(w http.ResponseWriter, err *errors.StandardError) {
	status := http.StatusInternalServerError
	switch err.Code {
	case errors.ErrCodeRequestValidationFailed, errors.ErrCodeInvalidCategory, errors.ErrCodeInvalidLocation:
		status = http.StatusBadRequest
	case errors.ErrCodeRateLimitExceeded:
		status = http.StatusTooManyRequests
	case errors.ErrCodeResourceNotFound, errors.ErrCodeSessionNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: err.Code, Message: err.Message}})
}

func writeError(w http.ResponseWriter, err error) {
	if stdErr, ok := err.(*errors.StandardError); ok {
		writeStandardError(w, stdErr)
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorEnvelope{Error: errorBody{
		Code:    "INTERNAL",
		Message: "internal server error",
	}})
}

func writeValidationError(w http.ResponseWriter, result *validation.Result) {
	writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
		Code:    errors.ErrCodeRequestValidationFailed,
		Message: "Request body failed schema validation",
		Errors:  result.Errors,
	}})
}
