package users

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/capstone-forum/backend/internal/models"
)

// Repository handles user profile persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a users repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Upsert creates or refreshes a profile keyed by the provider subject id.
// Display fields are overwritten from the provider on every sync; the
// posting-privacy preference is preserved.
func (r *Repository) Upsert(ctx context.Context, u *models.User) error {
	const query = `INSERT INTO users (user_id, first_name, last_name, avatar_url, email, student_year)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			avatar_url = EXCLUDED.avatar_url,
			email = EXCLUDED.email,
			student_year = EXCLUDED.student_year,
			updated_at = NOW()
		RETURNING post_anonymously, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, u.UserID, u.FirstName, u.LastName, u.AvatarURL, u.Email, u.StudentYear).
		Scan(&u.PostAnonymously, &u.CreatedAt, &u.UpdatedAt)
}

// UpdateSettings sets the posting-privacy preference and, when studentYear is
// non-nil, the audience-tag preference. Returns the stored values.
func (r *Repository) UpdateSettings(ctx context.Context, userID string, postAnonymously bool, studentYear *string) (bool, string, error) {
	const query = `UPDATE users SET
			post_anonymously = $2,
			student_year = COALESCE($3, student_year),
			updated_at = NOW()
		WHERE user_id = $1
		RETURNING post_anonymously, student_year`
	var storedAnon bool
	var storedYear string
	err := r.pool.QueryRow(ctx, query, userID, postAnonymously, studentYear).Scan(&storedAnon, &storedYear)
	return storedAnon, storedYear, err
}
