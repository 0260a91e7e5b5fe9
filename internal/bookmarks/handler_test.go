package bookmarks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capstone-forum/backend/internal/middleware"
	"github.com/capstone-forum/backend/internal/models"
)

type memoryStore struct {
	marks     map[string]bool
	questions []models.Question
	listErr   error
	gotLimit  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{marks: map[string]bool{}}
}

func (m *memoryStore) Toggle(ctx context.Context, questionID uuid.UUID, userID string) (bool, error) {
	key := questionID.String() + ":" + userID
	if m.marks[key] {
		delete(m.marks, key)
		return false, nil
	}
	m.marks[key] = true
	return true, nil
}

func (m *memoryStore) ListQuestions(ctx context.Context, userID string, limit int) ([]models.Question, error) {
	m.gotLimit = limit
	return m.questions, m.listErr
}

func serveBookmarks(t *testing.T, h *Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserID, "user_1")

	switch method {
	case http.MethodPost:
		h.Toggle(c)
	default:
		h.List(c)
	}

	var envelope struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope.Data
}

func TestToggleBookmarkPair(t *testing.T) {
	h := NewHandler(newMemoryStore())
	body := `{"questionId": "` + uuid.NewString() + `"}`

	w, data := serveBookmarks(t, h, http.MethodPost, "/bookmarks", body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, data["bookmarked"])

	w, data = serveBookmarks(t, h, http.MethodPost, "/bookmarks", body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, data["bookmarked"])
}

func TestToggleBookmarkValidation(t *testing.T) {
	h := NewHandler(newMemoryStore())

	w, _ := serveBookmarks(t, h, http.MethodPost, "/bookmarks", `{"questionId": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = serveBookmarks(t, h, http.MethodPost, "/bookmarks", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListBookmarks(t *testing.T) {
	store := newMemoryStore()
	q := models.NewQuestion()
	q.ID = uuid.New()
	q.Type = models.TypeAI
	q.QuestionText = "when is move-in day"
	store.questions = []models.Question{q}

	h := NewHandler(store)
	w, data := serveBookmarks(t, h, http.MethodGet, "/bookmarks?limit=10", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, store.gotLimit)

	list, ok := data["bookmarks"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 1)
	entry := list[0].(map[string]interface{})
	assert.Equal(t, "when is move-in day", entry["questionText"])
}

func TestListBookmarksClampsLimit(t *testing.T) {
	store := newMemoryStore()
	h := NewHandler(store)

	serveBookmarks(t, h, http.MethodGet, "/bookmarks", "")
	assert.Equal(t, 50, store.gotLimit)

	serveBookmarks(t, h, http.MethodGet, "/bookmarks?limit=9999", "")
	assert.Equal(t, 200, store.gotLimit)

	serveBookmarks(t, h, http.MethodGet, "/bookmarks?limit=-1", "")
	assert.Equal(t, 1, store.gotLimit)
}
