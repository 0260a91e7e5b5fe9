package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/capstone-forum/backend/internal/auth"
	"github.com/capstone-forum/backend/pkg/response"
)

const (
	// ContextUserID is the key for the verified subject id in gin context.
	ContextUserID = "user_id"
	// ContextClaims is the key for the full token claims in gin context.
	ContextClaims = "user_claims"
)

// RequireAuth validates the bearer token and sets the verified subject in
// context; requests without a valid token get 401.
func RequireAuth(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		claims, err := verifier.Verify(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// OptionalAuth sets the subject in context when a valid token is present and
// otherwise lets the request through as anonymous. An unverifiable token is
// treated the same as no token.
func OptionalAuth(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := verifier.Verify(token); err == nil {
				c.Set(ContextUserID, claims.Subject)
				c.Set(ContextClaims, claims)
			}
		}
		c.Next()
	}
}

// UserID returns the verified subject id set by RequireAuth/OptionalAuth.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return "", false
	}
	id, _ := v.(string)
	return id, id != ""
}

// TokenClaims returns the full claims set by RequireAuth/OptionalAuth.
func TokenClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
