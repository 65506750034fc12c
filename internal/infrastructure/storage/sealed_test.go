package storage

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestSealedStore(t *testing.T) {
	suite.Run(t, &DurableSuite{newStore: func() Durable {
		s, err := NewSealed(NewMemory(), testKey)
		require.NoError(t, err)
		return s
	}})
}

func TestSealedHidesPlaintext(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	s, err := NewSealed(mem, testKey)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "auth-token", []byte("secret-access-token")))

	raw, err := mem.Get(ctx, "auth-token")
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-access-token")
}

func TestSealedRejectsMovedValue(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	s, err := NewSealed(mem, testKey)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "a", []byte("value")))
	raw, _ := mem.Get(ctx, "a")
	require.NoError(t, mem.Set(ctx, "b", raw))

	_, err = s.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrTampered)

	require.NoError(t, mem.Set(ctx, "c", []byte("short")))
	_, err = s.Get(ctx, "c")
	assert.ErrorIs(t, err, ErrTampered)
}

func TestParseKey(t *testing.T) {
	key, err := ParseKey(hex.EncodeToString(testKey))
	require.NoError(t, err)
	assert.Equal(t, testKey, key)

	key, err = ParseKey("MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY=")
	require.NoError(t, err)
	assert.Equal(t, testKey, key)

	_, err = ParseKey("too-short")
	assert.Error(t, err)
}
