package http

import (
	"encoding/json"
	"net/http"
)

// Response bodies mirror the shapes the frontend already consumes:
// {code, message} for generic failures, {code, message, errors} for field
// validation, a bare {message} for the sold-out and already-voted replies.
const (
	msgBadRequest   = "Bad Request"
	msgNotFound     = "Not Found"
	msgInternal     = "Internal Server Error"
	msgValidation   = "Validation Error"
	msgSoldOut      = "Plus de billets disponibles"
	msgAlreadyVoted = "User has already voted on this question"
)

type apiError struct {
	Code    int      `json:"code,omitempty"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	body, err := json.Marshal(payload)
	if err != nil {
		_, _ = w.Write([]byte(`{"code":500,"message":"Internal Server Error"}`))
		return
	}
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiError{Code: status, Message: msg})
}

// writeMessage emits a body with only a message field, for the replies whose
// shape is fixed by the existing API contract.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiError{Message: msg})
}

func writeValidation(w http.ResponseWriter, violations []string) {
	writeJSON(w, http.StatusBadRequest, apiError{
		Code:    http.StatusBadRequest,
		Message: msgValidation,
		Errors:  violations,
	})
}
