package comments

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/capstone-forum/backend/internal/models"
)

// selectWithAuthor joins the author profile for display fields. Anonymous
// comments keep the author's name and avatar out of the result entirely.
const selectWithAuthor = `SELECT c.id, c.question_id, c.user_id, c.text, c.upvotes, c.is_anonymous, c.created_at,
		CASE WHEN c.is_anonymous THEN '' ELSE COALESCE(TRIM(CONCAT(u.first_name, ' ', u.last_name)), '') END,
		CASE WHEN c.is_anonymous THEN '' ELSE COALESCE(u.avatar_url, '') END
	FROM comments c
	LEFT JOIN users u ON u.user_id = c.user_id`

// Repository handles comment persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a comments repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a comment, capturing the author's current posting-privacy
// preference as the comment's immutable anonymity flag.
func (r *Repository) Create(ctx context.Context, cm *models.Comment) error {
	const query = `INSERT INTO comments (question_id, user_id, text, is_anonymous)
		VALUES ($1, $2, $3, COALESCE((SELECT post_anonymously FROM users WHERE user_id = $2), FALSE))
		RETURNING id, is_anonymous, created_at`
	return r.pool.QueryRow(ctx, query, cm.QuestionID, cm.UserID, cm.Text).
		Scan(&cm.ID, &cm.IsAnonymous, &cm.Timestamp)
}

// GetByID returns one comment with author display fields.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	row := r.pool.QueryRow(ctx, selectWithAuthor+` WHERE c.id = $1`, id)
	cm, err := scanComment(row)
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

// ListByQuestion returns a question's comments, oldest first.
func (r *Repository) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]models.Comment, error) {
	rows, err := r.pool.Query(ctx, selectWithAuthor+` WHERE c.question_id = $1 ORDER BY c.created_at`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Comment{}
	for rows.Next() {
		cm, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, cm)
	}
	return list, rows.Err()
}

func scanComment(row pgx.Row) (models.Comment, error) {
	var cm models.Comment
	err := row.Scan(&cm.ID, &cm.QuestionID, &cm.UserID, &cm.Text, &cm.Upvotes, &cm.IsAnonymous, &cm.Timestamp,
		&cm.AuthorName, &cm.AuthorAvatarURL)
	return cm, err
}
