package likes

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/capstone-forum/backend/internal/middleware"
	"github.com/capstone-forum/backend/pkg/response"
)

// ToggleRequest is the body for POST /likes.
type ToggleRequest struct {
	TargetType string `json:"targetType" binding:"required"`
	TargetID   string `json:"targetId" binding:"required"`
}

// Toggler flips a like relation and returns the new membership and counter.
type Toggler interface {
	Toggle(ctx context.Context, target Target, targetID uuid.UUID, userID string) (bool, int, error)
}

// Handler handles like toggling.
type Handler struct {
	repo Toggler
}

// NewHandler creates a likes handler.
func NewHandler(repo Toggler) *Handler {
	return &Handler{repo: repo}
}

// Toggle handles POST /likes (signed-in users only).
func (h *Handler) Toggle(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	target := Target(req.TargetType)
	if target != TargetQuestion && target != TargetComment {
		response.BadRequest(c, "invalid targetType")
		return
	}
	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		response.BadRequest(c, "invalid targetId")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(string)

	liked, upvotes, err := h.repo.Toggle(c.Request.Context(), target, targetID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "target not found")
			return
		}
		response.Internal(c, "failed to toggle like")
		return
	}
	response.OK(c, gin.H{"liked": liked, "upvotes": upvotes})
}
