package domain

import "errors"

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrSoldOut            = errors.New("no tickets left")
	ErrPollNotFound       = errors.New("poll not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrAnswerNotFound     = errors.New("answer not found")
	ErrAnswerMismatch     = errors.New("answer does not belong to question")
	ErrAlreadyVoted       = errors.New("user has already voted on this question")
	ErrInvalidID          = errors.New("invalid id")
)
