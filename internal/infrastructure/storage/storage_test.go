package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type DurableSuite struct {
	suite.Suite
	newStore func() Durable
}

func (s *DurableSuite) TestRoundTrip() {
	ctx := context.Background()
	store := s.newStore()

	_, err := store.Get(ctx, "easyway-store")
	s.Require().ErrorIs(err, ErrNotFound)

	s.Require().NoError(store.Set(ctx, "easyway-store", []byte(`{"language":"ta"}`)))
	got, err := store.Get(ctx, "easyway-store")
	s.Require().NoError(err)
	s.JSONEq(`{"language":"ta"}`, string(got))

	s.Require().NoError(store.Set(ctx, "easyway-store", []byte(`{}`)))
	got, err = store.Get(ctx, "easyway-store")
	s.Require().NoError(err)
	s.Equal(`{}`, string(got))

	s.Require().NoError(store.Delete(ctx, "easyway-store"))
	_, err = store.Get(ctx, "easyway-store")
	s.ErrorIs(err, ErrNotFound)
}

func (s *DurableSuite) TestDeleteMissingKey() {
	s.NoError(s.newStore().Delete(context.Background(), "missing"))
}

func (s *DurableSuite) TestKeysWithSeparators() {
	ctx := context.Background()
	store := s.newStore()

	s.Require().NoError(store.Set(ctx, "device:1/a:auth-token", []byte("a")))
	s.Require().NoError(store.Set(ctx, "device:1/b:auth-token", []byte("b")))

	a, err := store.Get(ctx, "device:1/a:auth-token")
	s.Require().NoError(err)
	s.Equal("a", string(a))
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &DurableSuite{newStore: func() Durable { return NewMemory() }})
}

func TestFileStore(t *testing.T) {
	suite.Run(t, &DurableSuite{newStore: func() Durable {
		f, err := NewFile(t.TempDir())
		require.NoError(t, err)
		return f
	}})
}

func TestNamespacedStore(t *testing.T) {
	suite.Run(t, &DurableSuite{newStore: func() Durable {
		return WithNamespace(NewMemory(), "easyway", "device", "abc")
	}})
}

func TestNamespacedPrefixes(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	ns := WithNamespace(mem, "easyway", "", "device", "abc")

	require.NoError(t, ns.Set(ctx, "auth-token", []byte("t")))
	assert.Equal(t, []string{"easyway:device:abc:auth-token"}, mem.Keys())
}

func TestFileHealth(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, f.Health(context.Background()))
}
