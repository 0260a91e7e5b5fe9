package comments

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/capstone-forum/backend/internal/middleware"
	"github.com/capstone-forum/backend/internal/models"
	"github.com/capstone-forum/backend/pkg/response"
)

// CreateRequest is the body for POST /comments.
type CreateRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

// Store is the persistence the handler needs.
type Store interface {
	Create(ctx context.Context, cm *models.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]models.Comment, error)
}

// Handler handles comment HTTP endpoints.
type Handler struct {
	repo Store
}

// NewHandler creates a comments handler.
func NewHandler(repo Store) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /comments?questionId= (public).
func (h *Handler) List(c *gin.Context) {
	questionID, err := uuid.Parse(c.Query("questionId"))
	if err != nil {
		response.BadRequest(c, "invalid questionId")
		return
	}
	list, err := h.repo.ListByQuestion(c.Request.Context(), questionID)
	if err != nil {
		response.Internal(c, "failed to list comments")
		return
	}
	response.OK(c, gin.H{"comments": list})
}

// Create handles POST /comments (signed-in users only).
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		response.BadRequest(c, "invalid questionId")
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		response.BadRequest(c, "comment text must not be empty")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(string)

	cm := &models.Comment{QuestionID: questionID, UserID: userID, Text: text}
	if err := h.repo.Create(c.Request.Context(), cm); err != nil {
		response.Internal(c, "failed to create comment")
		return
	}

	// Re-read to pick up the author display fields for the response.
	stored, err := h.repo.GetByID(c.Request.Context(), cm.ID)
	if err != nil {
		response.Internal(c, "failed to load created comment")
		return
	}
	response.Created(c, gin.H{"comment": stored})
}
