package bookmarks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/capstone-forum/backend/internal/models"
)

// Repository handles bookmark relations. Bookmarks are saved-for-later
// markers, fully independent of like state.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a bookmarks repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Toggle flips the (user, question) bookmark and returns the new membership.
func (r *Repository) Toggle(ctx context.Context, questionID uuid.UUID, userID string) (bool, error) {
	var exists bool
	const checkQuery = `SELECT EXISTS (SELECT 1 FROM bookmarks WHERE question_id = $1 AND user_id = $2)`
	if err := r.pool.QueryRow(ctx, checkQuery, questionID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check bookmark: %w", err)
	}

	if exists {
		const deleteQuery = `DELETE FROM bookmarks WHERE question_id = $1 AND user_id = $2`
		if _, err := r.pool.Exec(ctx, deleteQuery, questionID, userID); err != nil {
			return false, fmt.Errorf("delete bookmark: %w", err)
		}
		return false, nil
	}

	const insertQuery = `INSERT INTO bookmarks (question_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.pool.Exec(ctx, insertQuery, questionID, userID); err != nil {
		return false, fmt.Errorf("insert bookmark: %w", err)
	}
	return true, nil
}

// ListQuestions returns the user's bookmarked questions, most recently
// bookmarked first.
func (r *Repository) ListQuestions(ctx context.Context, userID string, limit int) ([]models.Question, error) {
	const query = `SELECT q.id, q.user_id, q.type, q.question_text, q.ai_answer, q.status, q.student_year, q.upvotes, q.created_at
		FROM bookmarks b
		JOIN questions q ON q.id = b.question_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Question{}
	for rows.Next() {
		q := models.NewQuestion()
		var userIDCol, aiAnswer, status, studentYear *string
		if err := rows.Scan(&q.ID, &userIDCol, &q.Type, &q.QuestionText, &aiAnswer, &status, &studentYear, &q.Upvotes, &q.Timestamp); err != nil {
			return nil, err
		}
		if userIDCol != nil {
			q.UserID = *userIDCol
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
		list = append(list, q)
	}
	return list, rows.Err()
}
