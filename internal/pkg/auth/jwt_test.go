package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestInspectReadsClaims(t *testing.T) {
	inspector := NewTokenInspector(time.Minute)
	token := signed(t, &Claims{
		UserID: 42,
		Email:  "asha@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := inspector.Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
}

func TestNeedsRefresh(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	inspector := NewTokenInspector(time.Minute)
	inspector.now = func() time.Time { return now }

	expiring := func(d time.Duration) string {
		return signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(d))})
	}

	assert.False(t, inspector.NeedsRefresh(expiring(time.Hour)))
	assert.True(t, inspector.NeedsRefresh(expiring(30*time.Second)))
	assert.True(t, inspector.NeedsRefresh(expiring(-time.Hour)))
	assert.False(t, inspector.NeedsRefresh(signed(t, jwt.RegisteredClaims{Subject: "no-exp"})))
	assert.False(t, inspector.NeedsRefresh("opaque-token"))
	assert.False(t, inspector.NeedsRefresh(""))
}
