package questions

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/capstone-forum/backend/internal/middleware"
	"github.com/capstone-forum/backend/internal/models"
	"github.com/capstone-forum/backend/internal/moderation"
	"github.com/capstone-forum/backend/pkg/redis"
	"github.com/capstone-forum/backend/pkg/response"
)

const (
	trendingCacheKey = "questions:trending"
	trendingCacheTTL = 5 * time.Minute
	trendingLimit    = 3
)

// CreateDiscussionRequest is the body for POST /questions.
type CreateDiscussionRequest struct {
	Topic       string `json:"topic" binding:"required"`
	StudentYear string `json:"studentYear"`
}

// Handler handles question listing and discussion creation.
type Handler struct {
	repo      *Repository
	moderator *moderation.Service
	cache     *redis.Client
	logger    *zap.Logger
}

// NewHandler creates a questions handler.
func NewHandler(repo *Repository, moderator *moderation.Service, cache *redis.Client, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, moderator: moderator, cache: cache, logger: logger}
}

// List handles GET /questions?type=&limit=.
func (h *Handler) List(c *gin.Context) {
	qtype := models.QuestionType(c.DefaultQuery("type", string(models.TypeAI)))
	if qtype != models.TypeAI && qtype != models.TypeDiscussion {
		response.BadRequest(c, "invalid question type")
		return
	}
	limit := clampLimit(c.Query("limit"))

	list, err := h.repo.ListByType(c.Request.Context(), qtype, limit)
	if err != nil {
		response.Internal(c, "failed to list questions")
		return
	}
	response.OK(c, gin.H{"questions": list})
}

// Trending handles GET /questions/trending: the most upvoted questions of the
// last month, cached briefly in Redis. Cache trouble falls through to the store.
func (h *Handler) Trending(c *gin.Context) {
	ctx := c.Request.Context()

	if cached := h.cachedTrending(ctx); cached != nil {
		response.OK(c, gin.H{"questions": cached})
		return
	}

	list, err := h.repo.Trending(ctx, trendingLimit)
	if err != nil {
		response.Internal(c, "failed to list trending questions")
		return
	}
	h.storeTrending(ctx, list)
	response.OK(c, gin.H{"questions": list})
}

// CreateDiscussion handles POST /questions. The topic passes a moderation
// check first; anonymous posters are allowed.
func (h *Handler) CreateDiscussion(c *gin.Context) {
	var req CreateDiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		response.BadRequest(c, "topic must not be empty")
		return
	}
	if req.StudentYear != "" && !models.ValidStudentYear(req.StudentYear) {
		response.BadRequest(c, "invalid student year")
		return
	}

	verdict := h.moderator.CheckTopic(c.Request.Context(), topic)
	if !verdict.Approved {
		response.BadRequest(c, "topic rejected: "+verdict.Reason)
		return
	}

	q := models.NewQuestion()
	q.Type = models.TypeDiscussion
	q.QuestionText = topic
	q.StudentYear = req.StudentYear
	if userID, ok := middleware.UserID(c); ok {
		q.UserID = userID
	}
	if err := h.repo.Create(c.Request.Context(), &q); err != nil {
		response.Internal(c, "failed to create discussion")
		return
	}
	response.Created(c, q)
}

func (h *Handler) cachedTrending(ctx context.Context) []models.Question {
	if h.cache == nil {
		return nil
	}
	raw, err := h.cache.Get(ctx, trendingCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var list []models.Question
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	return list
}

func (h *Handler) storeTrending(ctx context.Context, list []models.Question) {
	if h.cache == nil {
		return
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, trendingCacheKey, raw, trendingCacheTTL).Err(); err != nil {
		h.logger.Warn("trending cache write failed", zap.Error(err))
	}
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
