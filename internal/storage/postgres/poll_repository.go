package postgres

import (
	"context"
	"fmt"

	"github.com/Rtmt92/facebook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PollRepository struct {
	pool *pgxpool.Pool
}

func NewPollRepository(pool *pgxpool.Pool) *PollRepository {
	return &PollRepository{pool: pool}
}

func (r *PollRepository) CreatePoll(ctx context.Context, poll domain.Poll) error {
	const stmt = `
INSERT INTO polls (id, event_id, title, created_by, created_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, stmt, poll.ID, poll.EventID, poll.Title, poll.CreatedBy, poll.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			switch constraintName(err) {
			case "polls_event_id_fkey":
				return domain.ErrEventNotFound
			case "polls_created_by_fkey":
				return domain.ErrUserNotFound
			}
		}
		return fmt.Errorf("create poll: %w", err)
	}
	return nil
}

func (r *PollRepository) CreateQuestion(ctx context.Context, question domain.Question) error {
	const stmt = `
INSERT INTO questions (id, poll_id, text, created_at)
VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, stmt, question.ID, question.PollID, question.Text, question.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrPollNotFound
		}
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

func (r *PollRepository) CreateAnswer(ctx context.Context, answer domain.Answer) error {
	const stmt = `
INSERT INTO answers (id, question_id, text, created_at)
VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, stmt, answer.ID, answer.QuestionID, answer.Text, answer.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrQuestionNotFound
		}
		return fmt.Errorf("create answer: %w", err)
	}
	return nil
}

func (r *PollRepository) GetAnswer(ctx context.Context, answerID string) (domain.Answer, error) {
	const query = `SELECT id, question_id, text, created_at FROM answers WHERE id = $1`

	var a domain.Answer
	err := r.pool.QueryRow(ctx, query, answerID).Scan(&a.ID, &a.QuestionID, &a.Text, &a.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Answer{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Answer{}, domain.ErrAnswerNotFound
		}
		return domain.Answer{}, fmt.Errorf("get answer: %w", err)
	}
	return a, nil
}

// CreateVote relies on the (question_id, user_id) unique index to arbitrate
// concurrent votes: the loser of the race gets ErrAlreadyVoted.
func (r *PollRepository) CreateVote(ctx context.Context, vote domain.Vote) error {
	const stmt = `
INSERT INTO votes (id, question_id, answer_id, user_id, created_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, stmt, vote.ID, vote.QuestionID, vote.AnswerID, vote.UserID, vote.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyVoted
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			switch constraintName(err) {
			case "votes_question_id_fkey":
				return domain.ErrQuestionNotFound
			case "votes_answer_id_fkey":
				return domain.ErrAnswerNotFound
			case "votes_user_id_fkey":
				return domain.ErrUserNotFound
			}
		}
		return fmt.Errorf("create vote: %w", err)
	}
	return nil
}

// TallyByPoll aggregates committed votes per answer in one query. Questions
// without answers still appear, with an empty answer list.
func (r *PollRepository) TallyByPoll(ctx context.Context, pollID string) ([]domain.QuestionTally, error) {
	const existsQuery = `SELECT EXISTS (SELECT 1 FROM polls WHERE id = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, existsQuery, pollID).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("check poll: %w", err)
	}
	if !exists {
		return nil, domain.ErrPollNotFound
	}

	const query = `
SELECT q.id, q.text, a.text, COUNT(v.id)::int
FROM questions q
LEFT JOIN answers a ON a.question_id = q.id
LEFT JOIN votes v ON v.answer_id = a.id
WHERE q.poll_id = $1
GROUP BY q.id, q.text, q.created_at, a.id, a.text, a.created_at
ORDER BY q.created_at ASC, q.id ASC, a.created_at ASC, a.id ASC`

	rows, err := r.pool.Query(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("tally poll: %w", err)
	}
	defer rows.Close()

	var tallies []domain.QuestionTally
	lastQuestionID := ""
	for rows.Next() {
		var questionID, questionText string
		var answerText *string
		var votes int
		if err := rows.Scan(&questionID, &questionText, &answerText, &votes); err != nil {
			return nil, fmt.Errorf("scan tally: %w", err)
		}

		if questionID != lastQuestionID {
			tallies = append(tallies, domain.QuestionTally{
				QuestionText: questionText,
				Answers:      []domain.AnswerTally{},
			})
			lastQuestionID = questionID
		}
		if answerText != nil {
			current := &tallies[len(tallies)-1]
			current.Answers = append(current.Answers, domain.AnswerTally{
				AnswerText: *answerText,
				Votes:      votes,
			})
		}
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate tally: %w", rows.Err())
	}
	return tallies, nil
}
