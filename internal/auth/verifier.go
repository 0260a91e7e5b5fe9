package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims holds the session-token claims issued by the identity provider.
// Subject is the stable user id; profile fields follow OIDC claim names and
// may be absent depending on provider configuration.
type Claims struct {
	FirstName       string `json:"given_name,omitempty"`
	LastName        string `json:"family_name,omitempty"`
	AvatarURL       string `json:"picture,omitempty"`
	Email           string `json:"email,omitempty"`
	AuthorizedParty string `json:"azp,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates a bearer token and returns its claims. The rest of the
// system treats the provider as an opaque verifier returning a subject id.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// JWTVerifier validates provider session JWTs with a shared secret.
type JWTVerifier struct {
	secret            []byte
	authorizedParties map[string]struct{}
}

// NewJWTVerifier creates a verifier. authorizedParties restricts the accepted
// "azp" claim; empty means any party is accepted.
func NewJWTVerifier(secret string, authorizedParties []string) *JWTVerifier {
	parties := make(map[string]struct{}, len(authorizedParties))
	for _, p := range authorizedParties {
		parties[p] = struct{}{}
	}
	return &JWTVerifier{secret: []byte(secret), authorizedParties: parties}
}

// Verify parses and validates a session token, returning claims or error.
func (v *JWTVerifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if len(v.authorizedParties) > 0 {
		if _, ok := v.authorizedParties[claims.AuthorizedParty]; !ok {
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}
