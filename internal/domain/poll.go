package domain

import "time"

// Poll is a survey attached to an event, with questions in creation order.
type Poll struct {
	ID        string
	EventID   string
	Title     string
	CreatedBy string
	CreatedAt time.Time
}

type Question struct {
	ID        string
	PollID    string
	Text      string
	CreatedAt time.Time
}

type Answer struct {
	ID         string
	QuestionID string
	Text       string
	CreatedAt  time.Time
}

// Vote records one user's choice for one question. At most one vote may
// exist per (question, user) pair; the storage layer enforces this.
type Vote struct {
	ID         string
	QuestionID string
	AnswerID   string
	UserID     string
	CreatedAt  time.Time
}

// QuestionTally holds per-answer vote counts for one question, answers in
// creation order.
type QuestionTally struct {
	QuestionText string
	Answers      []AnswerTally
}

type AnswerTally struct {
	AnswerText string
	Votes      int
}
