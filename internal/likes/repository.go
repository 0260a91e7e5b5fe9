package likes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Target is the kind of record a like points at.
type Target string

const (
	TargetQuestion Target = "question"
	TargetComment  Target = "comment"
)

// likeQuery inserts the relation row and bumps the counter in one statement.
// The counter moves by the number of rows the insert actually created, so a
// toggler that loses a concurrent insert race adds nothing.
const likeQuery = `WITH ins AS (
		INSERT INTO %[1]s (%[2]s, user_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
		RETURNING 1
	)
	UPDATE %[3]s SET upvotes = upvotes + (SELECT count(*) FROM ins)
	WHERE id = $1
	RETURNING upvotes, (SELECT count(*) FROM ins)`

// unlikeQuery mirrors likeQuery: the decrement is the number of relation rows
// the delete actually removed.
const unlikeQuery = `WITH del AS (
		DELETE FROM %[1]s WHERE %[2]s = $1 AND user_id = $2
		RETURNING 1
	)
	UPDATE %[3]s SET upvotes = GREATEST(upvotes - (SELECT count(*) FROM del), 0)
	WHERE id = $1
	RETURNING upvotes`

// Repository handles like relations and their denormalized counters.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a likes repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Toggle flips the (user, target) like relation and adjusts the target's
// counter. Each step couples the relation change and the counter update in a
// single statement gated on the rows actually changed, so concurrent togglers
// of the same pair cannot drift the counter away from the relation count.
// Returns the new membership and the post-update counter.
func (r *Repository) Toggle(ctx context.Context, target Target, targetID uuid.UUID, userID string) (bool, int, error) {
	likesTable, targetTable, fkColumn, err := tables(target)
	if err != nil {
		return false, 0, err
	}

	var upvotes, inserted int
	query := fmt.Sprintf(likeQuery, likesTable, fkColumn, targetTable)
	if err := r.pool.QueryRow(ctx, query, targetID, userID).Scan(&upvotes, &inserted); err != nil {
		return false, 0, fmt.Errorf("like: %w", missingTarget(err))
	}
	if inserted == 1 {
		return true, upvotes, nil
	}

	// The relation row already existed (or a racer just removed it); either
	// way the caller's intent is now "unliked".
	query = fmt.Sprintf(unlikeQuery, likesTable, fkColumn, targetTable)
	if err := r.pool.QueryRow(ctx, query, targetID, userID).Scan(&upvotes); err != nil {
		return false, 0, fmt.Errorf("unlike: %w", err)
	}
	return false, upvotes, nil
}

// missingTarget maps a foreign key violation on the relation insert onto
// pgx.ErrNoRows, so a like against a nonexistent target reads as not-found
// rather than as a storage fault.
func missingTarget(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return pgx.ErrNoRows
	}
	return err
}

func tables(target Target) (likesTable, targetTable, fkColumn string, err error) {
	switch target {
	case TargetQuestion:
		return "question_likes", "questions", "question_id", nil
	case TargetComment:
		return "comment_likes", "comments", "comment_id", nil
	default:
		return "", "", "", fmt.Errorf("unknown like target %q", target)
	}
}
