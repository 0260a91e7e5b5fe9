package likes

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The counter must move by exactly the number of relation rows the same
// statement inserted or deleted. A toggle whose relation change was swallowed
// by a concurrent racer (ON CONFLICT DO NOTHING, or a delete matching zero
// rows) must leave the counter untouched.
func TestToggleCounterFollowsRelationRows(t *testing.T) {
	like := fmt.Sprintf(likeQuery, "question_likes", "question_id", "questions")
	assert.Contains(t, like, "ON CONFLICT DO NOTHING")
	assert.Contains(t, like, "upvotes = upvotes + (SELECT count(*) FROM ins)")
	assert.Contains(t, like, "RETURNING upvotes, (SELECT count(*) FROM ins)")

	unlike := fmt.Sprintf(unlikeQuery, "question_likes", "question_id", "questions")
	assert.Contains(t, unlike, "GREATEST(upvotes - (SELECT count(*) FROM del), 0)")

	// Relation change and counter update share one statement per step.
	assert.NotContains(t, like, ";")
	assert.NotContains(t, unlike, ";")
}

func TestMissingTargetTranslation(t *testing.T) {
	fkViolation := &pgconn.PgError{Code: "23503"}
	assert.ErrorIs(t, missingTarget(fkViolation), pgx.ErrNoRows)

	uniqueViolation := &pgconn.PgError{Code: "23505"}
	assert.NotErrorIs(t, missingTarget(uniqueViolation), pgx.ErrNoRows)

	other := errors.New("connection reset")
	assert.Equal(t, other, missingTarget(other))
}

func TestTables(t *testing.T) {
	likesTable, targetTable, fkColumn, err := tables(TargetQuestion)
	require.NoError(t, err)
	assert.Equal(t, "question_likes", likesTable)
	assert.Equal(t, "questions", targetTable)
	assert.Equal(t, "question_id", fkColumn)

	likesTable, targetTable, fkColumn, err = tables(TargetComment)
	require.NoError(t, err)
	assert.Equal(t, "comment_likes", likesTable)
	assert.Equal(t, "comments", targetTable)
	assert.Equal(t, "comment_id", fkColumn)

	_, _, _, err = tables(Target("post"))
	assert.Error(t, err)
}
