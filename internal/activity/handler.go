// Package activity serves a signed-in user's own posts. The AI-question and
// discussion lists do not depend on each other, so the two store queries run
// concurrently.
package activity

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/capstone-forum/backend/internal/middleware"
	"github.com/capstone-forum/backend/internal/models"
	"github.com/capstone-forum/backend/pkg/response"
)

// QuestionLister is the slice of the questions repository the handler needs.
type QuestionLister interface {
	ListByUserAndType(ctx context.Context, userID string, qtype models.QuestionType, limit int) ([]models.Question, error)
}

// Handler handles GET /my/activity.
type Handler struct {
	questions QuestionLister
}

// NewHandler creates an activity handler.
func NewHandler(questions QuestionLister) *Handler {
	return &Handler{questions: questions}
}

// List handles GET /my/activity?limit= (signed-in users only).
func (h *Handler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)
	limit := clampLimit(c.Query("limit"))

	var aiQuestions, discussionPosts []models.Question
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		aiQuestions, err = h.questions.ListByUserAndType(ctx, userID, models.TypeAI, limit)
		return err
	})
	g.Go(func() error {
		var err error
		discussionPosts, err = h.questions.ListByUserAndType(ctx, userID, models.TypeDiscussion, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		response.Internal(c, "failed to list activity")
		return
	}

	response.OK(c, gin.H{"aiQuestions": aiQuestions, "discussionPosts": discussionPosts})
}

func clampLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 50
	}
	if n < 1 {
		return 1
	}
	if n > 200 {
		return 200
	}
	return n
}
