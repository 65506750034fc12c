package storage

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrTampered is returned when a sealed value fails authentication
var ErrTampered = errors.New("storage: sealed value failed authentication")

// Sealed encrypts values at rest with XChaCha20-Poly1305. The storage key is
// bound as associated data, so a value copied under another key will not open.
type Sealed struct {
	inner Durable
	aead  cipher.AEAD
}

// ParseKey accepts a 32-byte key as hex or standard base64
func ParseKey(encoded string) ([]byte, error) {
	if key, err := hex.DecodeString(encoded); err == nil && len(key) == chacha20poly1305.KeySize {
		return key, nil
	}
	if key, err := base64.StdEncoding.DecodeString(encoded); err == nil && len(key) == chacha20poly1305.KeySize {
		return key, nil
	}
	return nil, fmt.Errorf("encryption key must be %d bytes, hex or base64 encoded", chacha20poly1305.KeySize)
}

// NewSealed wraps inner with authenticated encryption
func NewSealed(inner Durable, key []byte) (*Sealed, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to init cipher: %w", err)
	}
	return &Sealed{inner: inner, aead: aead}, nil
}

// Get opens the stored value
func (s *Sealed) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	nonceSize := s.aead.NonceSize()
	if len(sealed) < nonceSize+s.aead.Overhead() {
		return nil, ErrTampered
	}

	plain, err := s.aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], []byte(key))
	if err != nil {
		return nil, ErrTampered
	}
	return plain, nil
}

// Set seals value under a fresh random nonce
func (s *Sealed) Set(ctx context.Context, key string, value []byte) error {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(value)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}
	return s.inner.Set(ctx, key, s.aead.Seal(nonce, nonce, value, []byte(key)))
}

// Delete passes through
func (s *Sealed) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

// Health delegates to the wrapped backend when it supports it
func (s *Sealed) Health(ctx context.Context) error {
	if hc, ok := s.inner.(HealthChecker); ok {
		return hc.Health(ctx)
	}
	return nil
}
