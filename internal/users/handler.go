package users

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/capstone-forum/backend/internal/middleware"
	"github.com/capstone-forum/backend/internal/models"
	"github.com/capstone-forum/backend/pkg/response"
)

// SyncRequest is the body for POST /me.
type SyncRequest struct {
	StudentYear string `json:"studentYear"`
}

// SettingsRequest is the body for POST /me/settings.
type SettingsRequest struct {
	PostAnonymously *bool   `json:"postAnonymously" binding:"required"`
	StudentYear     *string `json:"studentYear"`
}

// Handler handles profile sync and settings.
type Handler struct {
	repo *Repository
}

// NewHandler creates a users handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Sync handles POST /me: upserts the caller's profile from the verified token
// claims plus the submitted audience-tag preference.
func (h *Handler) Sync(c *gin.Context) {
	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	studentYear := req.StudentYear
	if studentYear == "" {
		studentYear = "All"
	}
	if !models.ValidStudentYear(studentYear) {
		response.BadRequest(c, "invalid student year")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(string)
	claims, _ := middleware.TokenClaims(c)

	u := &models.User{UserID: userID, StudentYear: studentYear}
	if claims != nil {
		u.FirstName = claims.FirstName
		u.LastName = claims.LastName
		u.AvatarURL = claims.AvatarURL
		u.Email = claims.Email
	}
	if err := h.repo.Upsert(c.Request.Context(), u); err != nil {
		response.Internal(c, "failed to sync profile")
		return
	}
	response.OK(c, gin.H{"user": u})
}

// UpdateSettings handles POST /me/settings: the posting-privacy boolean plus
// an optional audience-tag update.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.StudentYear != nil && !models.ValidStudentYear(*req.StudentYear) {
		response.BadRequest(c, "invalid student year")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(string)

	postAnonymously, studentYear, err := h.repo.UpdateSettings(c.Request.Context(), userID, *req.PostAnonymously, req.StudentYear)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "profile not found, sync first")
			return
		}
		response.Internal(c, "failed to update settings")
		return
	}
	response.OK(c, gin.H{"postAnonymously": postAnonymously, "studentYear": studentYear})
}
