// Package spell offers a best-effort spelling cleanup for form text. It never
// blocks a submission: any model trouble returns the input unchanged.
package spell

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/capstone-forum/backend/internal/ai"
	"github.com/capstone-forum/backend/pkg/response"
)

const systemPrompt = `You are a helpful assistant that corrects spelling mistakes in a user's text.
- Only correct clear spelling errors.
- Do not change the user's grammar.
- Do not change the user's punctuation.
- Do not alter the sentence structure.
- Return only the corrected text.`

// CorrectRequest is the body for POST /spell.
type CorrectRequest struct {
	Text string `json:"text" binding:"required"`
}

// Handler handles spelling correction.
type Handler struct {
	ai     ai.Completer
	logger *zap.Logger
}

// NewHandler creates a spell handler.
func NewHandler(completer ai.Completer, logger *zap.Logger) *Handler {
	return &Handler{ai: completer, logger: logger}
}

// Correct handles POST /spell.
func (h *Handler) Correct(c *gin.Context) {
	var req CorrectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	corrected, err := h.ai.Complete(c.Request.Context(), systemPrompt, req.Text)
	if err != nil {
		h.logger.Warn("spelling correction failed open", zap.Error(err))
		corrected = req.Text
	}
	response.OK(c, gin.H{"text": strings.TrimSpace(corrected)})
}
