// internal/pkg/auth/jwt.go
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the parts of a backend access token the gateway looks at
type Claims struct {
	UserID int64  `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenInspector reads access token expiry without verifying the signature.
// The backend owns the signing key; the gateway only decides when to refresh.
type TokenInspector struct {
	skew   time.Duration
	parser *jwt.Parser
	now    func() time.Time
}

// NewTokenInspector creates an inspector that treats tokens expiring within skew as stale
func NewTokenInspector(skew time.Duration) *TokenInspector {
	return &TokenInspector{
		skew:   skew,
		parser: jwt.NewParser(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Inspect decodes the token's claims
func (i *TokenInspector) Inspect(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := i.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}

// ExpiresAt returns the token's expiry, or false when it cannot be read
func (i *TokenInspector) ExpiresAt(tokenString string) (time.Time, bool) {
	claims, err := i.Inspect(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// NeedsRefresh reports whether the token expires within the skew window.
// Opaque tokens and tokens without expiry never need a proactive refresh.
func (i *TokenInspector) NeedsRefresh(tokenString string) bool {
	if tokenString == "" {
		return false
	}
	exp, ok := i.ExpiresAt(tokenString)
	if !ok {
		return false
	}
	return exp.Sub(i.now()) <= i.skew
}
