package ask

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/capstone-forum/backend/internal/middleware"
	"github.com/capstone-forum/backend/pkg/response"
)

// SubmitRequest is the body for POST /ask.
type SubmitRequest struct {
	Question    string `json:"question" binding:"required"`
	StudentYear string `json:"studentYear"`
}

// Handler exposes the duplicate/answer pipeline over HTTP.
type Handler struct {
	pipeline  *Pipeline
	minLength int
	logger    *zap.Logger
}

// NewHandler creates an ask handler. minLength <= 0 defaults to 3.
func NewHandler(pipeline *Pipeline, minLength int, logger *zap.Logger) *Handler {
	if minLength <= 0 {
		minLength = 3
	}
	return &Handler{pipeline: pipeline, minLength: minLength, logger: logger}
}

// Submit handles POST /ask. Anonymous submissions are allowed; a valid bearer
// token attaches the caller's id to any newly stored question.
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	question := strings.TrimSpace(req.Question)
	if len(question) < h.minLength {
		response.BadRequest(c, "question too short")
		return
	}

	userID, _ := middleware.UserID(c)

	result, err := h.pipeline.Ask(c.Request.Context(), question, req.StudentYear, userID)
	if err != nil {
		h.logger.Error("ask pipeline failed", zap.Error(err))
		response.Internal(c, "failed to process question")
		return
	}
	response.OK(c, result)
}
