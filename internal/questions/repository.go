package questions

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/capstone-forum/backend/internal/models"
)

const selectColumns = `id, user_id, type, question_text, ai_answer, status, student_year, upvotes, created_at`

// Repository handles question persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a questions repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new question. An empty or "anonymous" UserID is stored as NULL.
func (r *Repository) Create(ctx context.Context, q *models.Question) error {
	const query = `INSERT INTO questions (user_id, type, question_text, ai_answer, status, student_year)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))
		RETURNING id, created_at`
	var userID *string
	if q.UserID != "" && q.UserID != models.AnonymousUserID {
		userID = &q.UserID
	}
	return r.pool.QueryRow(ctx, query, userID, q.Type, q.QuestionText, q.AIAnswer, string(q.Status), q.StudentYear).
		Scan(&q.ID, &q.Timestamp)
}

// ListByType returns the most recent questions of a kind, newest first.
func (r *Repository) ListByType(ctx context.Context, qtype models.QuestionType, limit int) ([]models.Question, error) {
	const query = `SELECT ` + selectColumns + ` FROM questions
		WHERE type = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, qtype, limit)
	if err != nil {
		return nil, err
	}
	return scanQuestions(rows)
}

// RecentAIQuestions returns the duplicate-candidate window: the most recent AI
// questions by descending creation time.
func (r *Repository) RecentAIQuestions(ctx context.Context, limit int) ([]models.Question, error) {
	return r.ListByType(ctx, models.TypeAI, limit)
}

// Trending returns the most upvoted questions of the last month.
func (r *Repository) Trending(ctx context.Context, limit int) ([]models.Question, error) {
	const query = `SELECT ` + selectColumns + ` FROM questions
		WHERE created_at >= $1 ORDER BY upvotes DESC, created_at DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, time.Now().AddDate(0, -1, 0), limit)
	if err != nil {
		return nil, err
	}
	return scanQuestions(rows)
}

// ListByUserAndType returns a user's own questions of a kind, newest first.
func (r *Repository) ListByUserAndType(ctx context.Context, userID string, qtype models.QuestionType, limit int) ([]models.Question, error) {
	const query = `SELECT ` + selectColumns + ` FROM questions
		WHERE user_id = $1 AND type = $2 ORDER BY created_at DESC LIMIT $3`
	rows, err := r.pool.Query(ctx, query, userID, qtype, limit)
	if err != nil {
		return nil, err
	}
	return scanQuestions(rows)
}

func scanQuestions(rows pgx.Rows) ([]models.Question, error) {
	defer rows.Close()
	list := []models.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

func scanQuestion(row pgx.Row) (models.Question, error) {
	q := models.NewQuestion()
	var (
		userID      *string
		aiAnswer    *string
		status      *string
		studentYear *string
	)
	err := row.Scan(&q.ID, &userID, &q.Type, &q.QuestionText, &aiAnswer, &status, &studentYear, &q.Upvotes, &q.Timestamp)
	if err != nil {
		return q, err
	}
	if userID != nil {
		q.UserID = *userID
	}
	if aiAnswer != nil {
		q.AIAnswer = *aiAnswer
	}
	if status != nil {
		q.Status = models.QuestionStatus(*status)
	}
	if studentYear != nil {
		q.StudentYear = *studentYear
	}
	return q, nil
}
