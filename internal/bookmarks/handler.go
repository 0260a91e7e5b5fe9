package bookmarks

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/capstone-forum/backend/internal/middleware"
	"github.com/capstone-forum/backend/internal/models"
	"github.com/capstone-forum/backend/pkg/response"
)

// ToggleRequest is the body for POST /bookmarks.
type ToggleRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
}

// Store is the persistence the handler needs.
type Store interface {
	Toggle(ctx context.Context, questionID uuid.UUID, userID string) (bool, error)
	ListQuestions(ctx context.Context, userID string, limit int) ([]models.Question, error)
}

// Handler handles bookmark HTTP endpoints.
type Handler struct {
	repo Store
}

// NewHandler creates a bookmarks handler.
func NewHandler(repo Store) *Handler {
	return &Handler{repo: repo}
}

// Toggle handles POST /bookmarks (signed-in users only).
func (h *Handler) Toggle(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		response.BadRequest(c, "invalid questionId")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(string)

	bookmarked, err := h.repo.Toggle(c.Request.Context(), questionID, userID)
	if err != nil {
		response.Internal(c, "failed to toggle bookmark")
		return
	}
	response.OK(c, gin.H{"bookmarked": bookmarked})
}

// List handles GET /bookmarks?limit= (signed-in users only).
func (h *Handler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)
	limit := clampLimit(c.Query("limit"))

	list, err := h.repo.ListQuestions(c.Request.Context(), userID, limit)
	if err != nil {
		response.Internal(c, "failed to list bookmarks")
		return
	}
	response.OK(c, gin.H{"bookmarks": list})
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
