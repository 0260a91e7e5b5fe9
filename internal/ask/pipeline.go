package ask

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/capstone-forum/backend/internal/ai"
	"github.com/capstone-forum/backend/internal/models"
)

// DefaultCandidateLimit is the window of recent AI questions scanned for
// duplicates. A duplicate older than the window is never detected; that is a
// known limitation of the heuristic, not a bug.
const DefaultCandidateLimit = 40

// QuestionStore is the persistence the pipeline needs: the recent-candidate
// window and the single insert for a genuinely new question.
type QuestionStore interface {
	RecentAIQuestions(ctx context.Context, limit int) ([]models.Question, error)
	Create(ctx context.Context, q *models.Question) error
}

// DuplicateType says which check matched an existing record.
type DuplicateType string

const (
	DuplicateExact    DuplicateType = "exact"
	DuplicateSemantic DuplicateType = "semantic"
)

// Result is the outcome of one submission: either an existing record's answer
// (duplicate), a fresh answered record, or a rejection that persisted nothing.
type Result struct {
	Status        models.QuestionStatus `json:"status"`
	Answer        string                `json:"answer,omitempty"`
	Reason        string                `json:"reason,omitempty"`
	QuestionID    string                `json:"questionId,omitempty"`
	Duplicate     bool                  `json:"duplicate"`
	DuplicateType DuplicateType         `json:"duplicateType,omitempty"`
}

// Pipeline decides whether a new question duplicates an existing answered one
// and, if not, obtains a fresh answer. It persists exactly one new record per
// genuinely new, in-scope question.
type Pipeline struct {
	store          QuestionStore
	ai             ai.Completer
	candidateLimit int
	logger         *zap.Logger
}

// NewPipeline creates the duplicate/answer pipeline. candidateLimit <= 0 falls
// back to DefaultCandidateLimit.
func NewPipeline(store QuestionStore, completer ai.Completer, candidateLimit int, logger *zap.Logger) *Pipeline {
	if candidateLimit <= 0 {
		candidateLimit = DefaultCandidateLimit
	}
	return &Pipeline{store: store, ai: completer, candidateLimit: candidateLimit, logger: logger}
}

// Ask runs the full sequence: exact match, semantic match, fresh answer.
// userID is empty for anonymous submissions. Duplicate checks fail open on
// model trouble; answer generation fails closed.
func (p *Pipeline) Ask(ctx context.Context, question, studentYear, userID string) (*Result, error) {
	normalized := Normalize(question)

	candidates, err := p.store.RecentAIQuestions(ctx, p.candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch duplicate candidates: %w", err)
	}

	// Exact match: verbatim repeats never create a second record.
	answered := candidates[:0:0]
	for _, cand := range candidates {
		isAnswered := cand.Status == models.StatusAnswered && cand.AIAnswer != ""
		if isAnswered && Normalize(cand.QuestionText) == normalized {
			return &Result{
				Status:        models.StatusAnswered,
				Answer:        cand.AIAnswer,
				QuestionID:    cand.ID.String(),
				Duplicate:     true,
				DuplicateType: DuplicateExact,
			}, nil
		}
		if isAnswered {
			answered = append(answered, cand)
		}
	}

	if match := p.semanticMatch(ctx, question, answered); match != nil {
		return &Result{
			Status:        models.StatusAnswered,
			Answer:        match.AIAnswer,
			QuestionID:    match.ID.String(),
			Duplicate:     true,
			DuplicateType: DuplicateSemantic,
		}, nil
	}

	return p.freshAnswer(ctx, question, studentYear, userID)
}

type duplicateVerdict struct {
	IsDuplicate bool   `json:"isDuplicate"`
	MatchedID   string `json:"matchedId"`
}

// semanticMatch asks the model to pick a meaning-equivalent candidate. Any
// failure (call error, malformed JSON, unknown id) means "not a duplicate".
func (p *Pipeline) semanticMatch(ctx context.Context, question string, answered []models.Question) *models.Question {
	if len(answered) == 0 {
		return nil
	}

	type candidate struct {
		ID       string `json:"id"`
		Question string `json:"question"`
	}
	payload := struct {
		NewQuestion       string      `json:"new_question"`
		ExistingQuestions []candidate `json:"existing_questions"`
	}{NewQuestion: question}
	for _, cand := range answered {
		payload.ExistingQuestions = append(payload.ExistingQuestions, candidate{
			ID:       cand.ID.String(),
			Question: cand.QuestionText,
		})
	}
	user, err := json.Marshal(payload)
	if err != nil {
		return nil
	}

	raw, err := p.ai.CompleteJSON(ctx, duplicateSystemPrompt, string(user), 0)
	if err != nil {
		p.logger.Warn("semantic duplicate check failed open", zap.Error(err))
		return nil
	}

	var verdict duplicateVerdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		p.logger.Warn("semantic duplicate check returned bad JSON, failing open", zap.Error(err))
		return nil
	}
	if !verdict.IsDuplicate || verdict.MatchedID == "" {
		return nil
	}
	matchedID, err := uuid.Parse(verdict.MatchedID)
	if err != nil {
		return nil
	}
	for i := range answered {
		if answered[i].ID == matchedID {
			return &answered[i]
		}
	}
	// The model pointed at an id outside the answered candidates.
	return nil
}

type generatedAnswer struct {
	Status models.QuestionStatus `json:"status"`
	Answer string                `json:"answer"`
	Reason string                `json:"reason"`
}

// freshAnswer generates a new answer and persists one record when the question
// is in scope. Rejections persist nothing. Unlike the duplicate checks, model
// trouble here is surfaced to the caller.
func (p *Pipeline) freshAnswer(ctx context.Context, question, studentYear, userID string) (*Result, error) {
	year := studentYear
	if year == "" {
		year = "All"
	}
	user := fmt.Sprintf("Parent question: %q\nStudent year: %q", question, year)

	raw, err := p.ai.CompleteJSON(ctx, answerSystemPrompt(studentYear), user, 0.4)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	var gen generatedAnswer
	if err := json.Unmarshal([]byte(raw), &gen); err != nil {
		return nil, fmt.Errorf("parse generated answer: %w", err)
	}
	if gen.Status != models.StatusAnswered && gen.Status != models.StatusRejected {
		return nil, fmt.Errorf("generated answer has unknown status %q", gen.Status)
	}

	if gen.Status == models.StatusRejected {
		return &Result{Status: models.StatusRejected, Reason: gen.Reason}, nil
	}

	q := models.NewQuestion()
	q.Type = models.TypeAI
	q.QuestionText = question
	q.AIAnswer = gen.Answer
	q.Status = models.StatusAnswered
	q.StudentYear = year
	if userID != "" {
		q.UserID = userID
	}
	if err := p.store.Create(ctx, &q); err != nil {
		return nil, fmt.Errorf("insert question: %w", err)
	}

	return &Result{
		Status:     models.StatusAnswered,
		Answer:     gen.Answer,
		QuestionID: q.ID.String(),
	}, nil
}
