package app

import (
	"context"

	"github.com/Rtmt92/facebook/internal/clock"
	"github.com/Rtmt92/facebook/internal/domain"
)

type PollRepository interface {
	CreatePoll(ctx context.Context, poll domain.Poll) error
	CreateQuestion(ctx context.Context, question domain.Question) error
	CreateAnswer(ctx context.Context, answer domain.Answer) error
	GetAnswer(ctx context.Context, answerID string) (domain.Answer, error)
	CreateVote(ctx context.Context, vote domain.Vote) error
}

// PollService owns poll creation and vote admission. Vote uniqueness per
// (question, user) is arbitrated by the storage layer, so a lost race
// surfaces as ErrAlreadyVoted rather than a second vote.
type PollService struct {
	repo  PollRepository
	clock clock.Clock
}

func NewPollService(repo PollRepository, clk clock.Clock) *PollService {
	return &PollService{
		repo:  repo,
		clock: clk,
	}
}

type CreatePollInput struct {
	EventID   string
	Title     string
	CreatedBy string
}

func (s *PollService) CreatePoll(ctx context.Context, in CreatePollInput) (domain.Poll, error) {
	if in.EventID == "" {
		return domain.Poll{}, domain.ErrInvalidID
	}
	var v domain.Violations
	if in.Title == "" {
		v.Add("title is required")
	}
	if in.CreatedBy == "" {
		v.Add("createdBy is required")
	}
	if err := v.Err(); err != nil {
		return domain.Poll{}, err
	}

	poll := domain.Poll{
		ID:        newID(),
		EventID:   in.EventID,
		Title:     in.Title,
		CreatedBy: in.CreatedBy,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.CreatePoll(ctx, poll); err != nil {
		return domain.Poll{}, err
	}
	return poll, nil
}

func (s *PollService) AddQuestion(ctx context.Context, pollID, text string) (domain.Question, error) {
	if pollID == "" {
		return domain.Question{}, domain.ErrInvalidID
	}
	if text == "" {
		var v domain.Violations
		v.Add("text is required")
		return domain.Question{}, v.Err()
	}

	question := domain.Question{
		ID:        newID(),
		PollID:    pollID,
		Text:      text,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.CreateQuestion(ctx, question); err != nil {
		return domain.Question{}, err
	}
	return question, nil
}

func (s *PollService) AddAnswer(ctx context.Context, questionID, text string) (domain.Answer, error) {
	if questionID == "" {
		return domain.Answer{}, domain.ErrInvalidID
	}
	if text == "" {
		var v domain.Violations
		v.Add("text is required")
		return domain.Answer{}, v.Err()
	}

	answer := domain.Answer{
		ID:         newID(),
		QuestionID: questionID,
		Text:       text,
		CreatedAt:  s.clock.Now(),
	}

	if err := s.repo.CreateAnswer(ctx, answer); err != nil {
		return domain.Answer{}, err
	}
	return answer, nil
}

type CastVoteInput struct {
	QuestionID string
	UserID     string
	AnswerID   string
}

// CastVote admits at most one vote per (question, user). The selected answer
// must belong to the question being voted on.
func (s *PollService) CastVote(ctx context.Context, in CastVoteInput) (domain.Vote, error) {
	if in.QuestionID == "" {
		return domain.Vote{}, domain.ErrInvalidID
	}
	var v domain.Violations
	if in.UserID == "" {
		v.Add("user is required")
	}
	if in.AnswerID == "" {
		v.Add("selectedAnswer is required")
	}
	if err := v.Err(); err != nil {
		return domain.Vote{}, err
	}

	answer, err := s.repo.GetAnswer(ctx, in.AnswerID)
	if err != nil {
		return domain.Vote{}, err
	}
	if answer.QuestionID != in.QuestionID {
		return domain.Vote{}, domain.ErrAnswerMismatch
	}

	vote := domain.Vote{
		ID:         newID(),
		QuestionID: in.QuestionID,
		AnswerID:   in.AnswerID,
		UserID:     in.UserID,
		CreatedAt:  s.clock.Now(),
	}

	if err := s.repo.CreateVote(ctx, vote); err != nil {
		return domain.Vote{}, err
	}
	return vote, nil
}
