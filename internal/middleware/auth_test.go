package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/capstone-forum/backend/internal/auth"
)

type fakeVerifier struct {
	subject string
	err     error
}

func (f *fakeVerifier) Verify(token string) (*auth.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	claims := &auth.Claims{}
	claims.Subject = f.subject
	return claims, nil
}

func runRequest(mw gin.HandlerFunc, header string) (*httptest.ResponseRecorder, string) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	router := gin.New()
	var gotUserID string
	router.GET("/probe", mw, func(c *gin.Context) {
		gotUserID, _ = UserID(c)
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	router.ServeHTTP(w, req)
	return w, gotUserID
}

func TestRequireAuth(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		w, _ := runRequest(RequireAuth(&fakeVerifier{subject: "user_1"}), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w, _ := runRequest(RequireAuth(&fakeVerifier{subject: "user_1"}), "Token abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		w, _ := runRequest(RequireAuth(&fakeVerifier{err: auth.ErrInvalidToken}), "Bearer bad")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		w, userID := runRequest(RequireAuth(&fakeVerifier{subject: "user_1"}), "Bearer good")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user_1", userID)
	})
}

func TestOptionalAuth(t *testing.T) {
	t.Run("no token passes as anonymous", func(t *testing.T) {
		w, userID := runRequest(OptionalAuth(&fakeVerifier{subject: "user_1"}), "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, userID)
	})

	t.Run("invalid token treated as anonymous", func(t *testing.T) {
		w, userID := runRequest(OptionalAuth(&fakeVerifier{err: auth.ErrInvalidToken}), "Bearer bad")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, userID)
	})

	t.Run("valid token sets subject", func(t *testing.T) {
		w, userID := runRequest(OptionalAuth(&fakeVerifier{subject: "user_1"}), "Bearer good")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user_1", userID)
	})
}
