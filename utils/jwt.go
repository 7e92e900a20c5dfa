package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// Claims is what the shell reads out of the backend's bearer token. The
// backend signs it; the shell never holds the key, so claims are only
// inspected, not verified.
type Claims struct {
	UserID string `json:"userID,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.StandardClaims
}

var ErrNotJWT = errors.New("token is not a JWT")

// TokenClaims decodes the claims of tokenStr without checking its signature.
func TokenClaims(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	parser := &jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil, ErrNotJWT
	}

	return claims, nil
}

// TokenExpired reports whether tokenStr is a JWT whose exp lies before now.
// Opaque tokens and tokens without exp never count as expired.
func TokenExpired(tokenStr string, now time.Time) bool {
	claims, err := TokenClaims(tokenStr)
	if err != nil {
		return false
	}
	if claims.ExpiresAt == 0 {
		return false
	}
	return !claims.VerifyExpiresAt(now.Unix(), true)
}
