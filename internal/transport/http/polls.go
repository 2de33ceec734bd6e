package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Rtmt92/facebook/internal/app"
	"github.com/Rtmt92/facebook/internal/domain"
)

// PollService is the minimal interface the poll endpoints need.
type PollService interface {
	CreatePoll(ctx context.Context, in app.CreatePollInput) (domain.Poll, error)
	AddQuestion(ctx context.Context, pollID, text string) (domain.Question, error)
	AddAnswer(ctx context.Context, questionID, text string) (domain.Answer, error)
	CastVote(ctx context.Context, in app.CastVoteInput) (domain.Vote, error)
}

// ResultsService is the read-only side of polls.
type ResultsService interface {
	Results(ctx context.Context, pollID string) ([]domain.QuestionTally, error)
}

// HandlePoll serves /poll/{id}/question and /poll/{id}/results.
func HandlePoll(polls PollService, results ResultsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pollID, action, ok := parseResourcePath(r.URL.Path, "poll")
		if !ok {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}

		switch {
		case action == "question" && r.Method == http.MethodPost:
			addQuestion(w, r, polls, pollID)
		case action == "results" && r.Method == http.MethodGet:
			pollResults(w, r, results, pollID)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleQuestion serves /question/{id}/answer and /question/{id}/vote.
func HandleQuestion(polls PollService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questionID, action, ok := parseResourcePath(r.URL.Path, "question")
		if !ok {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		switch action {
		case "answer":
			addAnswer(w, r, polls, questionID)
		case "vote":
			castVote(w, r, polls, questionID)
		default:
			writeError(w, http.StatusNotFound, msgNotFound)
		}
	}
}

func createPoll(w http.ResponseWriter, r *http.Request, svc PollService, eventID string) {
	var req createPollRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	poll, err := svc.CreatePoll(r.Context(), app.CreatePollInput{
		EventID:   eventID,
		Title:     req.Title,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, pollResponse{
		ID:        poll.ID,
		Event:     poll.EventID,
		Title:     poll.Title,
		CreatedBy: poll.CreatedBy,
		CreatedAt: poll.CreatedAt,
	})
}

func addQuestion(w http.ResponseWriter, r *http.Request, svc PollService, pollID string) {
	var req textRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	question, err := svc.AddQuestion(r.Context(), pollID, req.Text)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, questionResponse{
		ID:        question.ID,
		Poll:      question.PollID,
		Text:      question.Text,
		CreatedAt: question.CreatedAt,
	})
}

func addAnswer(w http.ResponseWriter, r *http.Request, svc PollService, questionID string) {
	var req textRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	answer, err := svc.AddAnswer(r.Context(), questionID, req.Text)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, answerResponse{
		ID:       answer.ID,
		Question: answer.QuestionID,
		Text:     answer.Text,
	})
}

func castVote(w http.ResponseWriter, r *http.Request, svc PollService, questionID string) {
	var req castVoteRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	vote, err := svc.CastVote(r.Context(), app.CastVoteInput{
		QuestionID: questionID,
		UserID:     req.User,
		AnswerID:   req.SelectedAnswer,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, voteResponse{
		ID:             vote.ID,
		Question:       vote.QuestionID,
		SelectedAnswer: vote.AnswerID,
		User:           vote.UserID,
		CreatedAt:      vote.CreatedAt,
	})
}

func pollResults(w http.ResponseWriter, r *http.Request, svc ResultsService, pollID string) {
	tallies, err := svc.Results(r.Context(), pollID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]questionResultsResponse, 0, len(tallies))
	for _, q := range tallies {
		stats := make([]answerResultResponse, 0, len(q.Answers))
		for _, a := range q.Answers {
			stats = append(stats, answerResultResponse{
				Answer: a.AnswerText,
				Votes:  a.Votes,
			})
		}
		resp = append(resp, questionResultsResponse{
			Question: q.QuestionText,
			Results:  stats,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type createPollRequest struct {
	Title     string `json:"title"`
	CreatedBy string `json:"createdBy"`
}

type pollResponse struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	Title     string    `json:"title"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

type textRequest struct {
	Text string `json:"text"`
}

type questionResponse struct {
	ID        string    `json:"id"`
	Poll      string    `json:"poll"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type answerResponse struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Text     string `json:"text"`
}

type castVoteRequest struct {
	User           string `json:"user"`
	SelectedAnswer string `json:"selectedAnswer"`
}

type voteResponse struct {
	ID             string    `json:"id"`
	Question       string    `json:"question"`
	SelectedAnswer string    `json:"selectedAnswer"`
	User           string    `json:"user"`
	CreatedAt      time.Time `json:"createdAt"`
}

type questionResultsResponse struct {
	Question string                 `json:"question"`
	Results  []answerResultResponse `json:"results"`
}

type answerResultResponse struct {
	Answer string `json:"answer"`
	Votes  int    `json:"votes"`
}
