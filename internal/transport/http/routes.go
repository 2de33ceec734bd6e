package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Rtmt92/facebook/internal/domain"
)

// parseResourcePath splits "/<prefix>/{id}/<action>" and returns the id and
// action segments.
func parseResourcePath(path, prefix string) (id, action string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return "", "", false
	}
	if parts[0] != prefix || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// writeDomainError maps service failures to responses. Absent referenced
// entities are 404 across the board (the legacy API mixed 400 and 404); the
// sold-out and already-voted bodies keep the message-only shape the frontend
// string-matches on.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidation(w, verr.Violations)
	case errors.Is(err, domain.ErrSoldOut):
		writeMessage(w, http.StatusBadRequest, msgSoldOut)
	case errors.Is(err, domain.ErrAlreadyVoted):
		writeMessage(w, http.StatusBadRequest, msgAlreadyVoted)
	case errors.Is(err, domain.ErrAnswerMismatch):
		writeError(w, http.StatusBadRequest, msgBadRequest)
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTicketTypeNotFound),
		errors.Is(err, domain.ErrPollNotFound),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrAnswerNotFound),
		errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusNotFound, msgNotFound)
	default:
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}
