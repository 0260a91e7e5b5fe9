package likes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capstone-forum/backend/internal/middleware"
)

// memoryToggler implements the toggle contract over in-memory state.
type memoryToggler struct {
	members map[string]bool
	counts  map[uuid.UUID]int
	err     error
}

func newMemoryToggler() *memoryToggler {
	return &memoryToggler{members: map[string]bool{}, counts: map[uuid.UUID]int{}}
}

func (m *memoryToggler) Toggle(ctx context.Context, target Target, targetID uuid.UUID, userID string) (bool, int, error) {
	if m.err != nil {
		return false, 0, m.err
	}
	key := string(target) + ":" + targetID.String() + ":" + userID
	if m.members[key] {
		delete(m.members, key)
		if m.counts[targetID] > 0 {
			m.counts[targetID]--
		}
		return false, m.counts[targetID], nil
	}
	m.members[key] = true
	m.counts[targetID]++
	return true, m.counts[targetID], nil
}

func postToggle(t *testing.T, h *Handler, userID string, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/likes", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserID, userID)

	h.Toggle(c)

	var envelope struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope.Data
}

func TestToggleLikePair(t *testing.T) {
	toggler := newMemoryToggler()
	h := NewHandler(toggler)
	questionID := uuid.New()
	body := `{"targetType": "question", "targetId": "` + questionID.String() + `"}`

	w, data := postToggle(t, h, "user_1", body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, data["liked"])
	assert.Equal(t, float64(1), data["upvotes"])

	// Toggling again returns to the original state and counter.
	w, data = postToggle(t, h, "user_1", body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, data["liked"])
	assert.Equal(t, float64(0), data["upvotes"])
}

func TestToggleCountsPerUser(t *testing.T) {
	toggler := newMemoryToggler()
	h := NewHandler(toggler)
	questionID := uuid.New()
	body := `{"targetType": "question", "targetId": "` + questionID.String() + `"}`

	_, data := postToggle(t, h, "user_1", body)
	assert.Equal(t, float64(1), data["upvotes"])
	_, data = postToggle(t, h, "user_2", body)
	assert.Equal(t, float64(2), data["upvotes"])
	_, data = postToggle(t, h, "user_1", body)
	assert.Equal(t, float64(1), data["upvotes"])
	assert.Equal(t, false, data["liked"])
}

func TestToggleValidation(t *testing.T) {
	h := NewHandler(newMemoryToggler())

	t.Run("unknown target type", func(t *testing.T) {
		w, _ := postToggle(t, h, "user_1", `{"targetType": "post", "targetId": "`+uuid.NewString()+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad target id", func(t *testing.T) {
		w, _ := postToggle(t, h, "user_1", `{"targetType": "question", "targetId": "not-a-uuid"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w, _ := postToggle(t, h, "user_1", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestToggleTargetNotFound(t *testing.T) {
	toggler := newMemoryToggler()
	toggler.err = pgx.ErrNoRows
	h := NewHandler(toggler)

	w, _ := postToggle(t, h, "user_1", `{"targetType": "comment", "targetId": "`+uuid.NewString()+`"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
