package app

import (
	"context"

	"github.com/Rtmt92/facebook/internal/domain"
)

type ResultsRepository interface {
	TallyByPoll(ctx context.Context, pollID string) ([]domain.QuestionTally, error)
}

// ResultsService is the read side of polling: it aggregates committed votes
// per answer without touching the ledger.
type ResultsService struct {
	repo ResultsRepository
}

func NewResultsService(repo ResultsRepository) *ResultsService {
	return &ResultsService{repo: repo}
}

// Results returns questions in creation order, each with its answers in
// creation order and the number of votes each answer received.
func (s *ResultsService) Results(ctx context.Context, pollID string) ([]domain.QuestionTally, error) {
	if pollID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.TallyByPoll(ctx, pollID)
}
