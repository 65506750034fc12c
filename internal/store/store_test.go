package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/your-org/easyway-storefront/internal/domain/cart"
	"github.com/your-org/easyway-storefront/internal/domain/catalog"
	"github.com/your-org/easyway-storefront/internal/domain/favorite"
	"github.com/your-org/easyway-storefront/internal/domain/user"
	"github.com/your-org/easyway-storefront/internal/infrastructure/storage"
	"github.com/your-org/easyway-storefront/internal/pkg/logger"
)

type failingStorage struct {
	storage.Durable
	fail bool
}

func (f *failingStorage) Set(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Durable.Set(ctx, key, value)
}

type StoreSuite struct {
	suite.Suite
	ctx     context.Context
	backend *storage.Memory
	store   *Store
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.backend = storage.NewMemory()
	s.store = New(s.backend, logger.Discard(), DefaultDefaults)
}

func (s *StoreSuite) reload() *Store {
	st, err := Load(s.ctx, s.backend, logger.Discard(), DefaultDefaults)
	s.Require().NoError(err)
	return st
}

func tomato() catalog.Product {
	return catalog.Product{
		ProductID:          1,
		NameTranslations:   catalog.Names{{Language: "en", Name: "Tomato"}, {Language: "ta", Name: "தக்காளி"}},
		MeasurementPrice:   catalog.Rupees(60),
		HeroImageSignedURL: "https://img/1.png",
	}
}

func (s *StoreSuite) TestDefaults() {
	snap := s.store.Snapshot()
	s.False(snap.IsAuthenticated)
	s.Nil(snap.User)
	s.Equal(catalog.LocaleEnglish, snap.Language)
	s.Equal("Chennai", snap.SelectedLocation)
	s.Empty(snap.CartItems)
	s.Equal(catalog.Money(0), snap.CartTotal)
}

func (s *StoreSuite) TestAddToCartTwice() {
	line := cart.LineFromProduct(tomato())
	s.store.AddToCart(s.ctx, line)
	s.store.AddToCart(s.ctx, line)

	items := s.store.CartItems()
	s.Require().Len(items, 1)
	s.Equal(2, items[0].Quantity)
	s.Equal(catalog.Rupees(120), s.store.CartTotal())
}

func (s *StoreSuite) TestLoginLogoutRoundTrip() {
	u := &user.User{UserID: 9, FirstName: "Asha", Email: "asha@example.com"}
	tokens := &user.Tokens{AccessToken: "a", RefreshToken: "r"}

	s.store.Login(s.ctx, u, tokens)
	s.True(s.store.IsAuthenticated())

	access, err := s.store.AccessToken(s.ctx)
	s.Require().NoError(err)
	s.Equal("a", access)
	refresh, err := s.store.RefreshToken(s.ctx)
	s.Require().NoError(err)
	s.Equal("r", refresh)

	s.store.Logout(s.ctx)

	snap := s.store.Snapshot()
	s.False(snap.IsAuthenticated)
	s.Nil(snap.User)
	s.Nil(snap.Tokens)

	access, err = s.store.AccessToken(s.ctx)
	s.Require().NoError(err)
	s.Empty(access)
	_, err = s.backend.Get(s.ctx, RefreshTokenKey)
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *StoreSuite) TestPersistedSnapshotShape() {
	s.store.Login(s.ctx, &user.User{UserID: 1, FirstName: "A"}, &user.Tokens{AccessToken: "a", RefreshToken: "r"})
	s.store.AddToCart(s.ctx, cart.LineFromProduct(tomato()))
	s.store.AddProductToFavorites(s.ctx, tomato())
	s.store.SetProducts([]catalog.Product{tomato()})
	s.store.SetLoading(true)

	raw, err := s.backend.Get(s.ctx, SnapshotKey)
	s.Require().NoError(err)

	var doc map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal(raw, &doc))
	for _, key := range []string{"user", "tokens", "isAuthenticated", "language", "selectedLocation", "cartItems", "cartTotal", "favorites", "addresses"} {
		s.Contains(doc, key)
	}
	s.NotContains(doc, "products")
	s.NotContains(doc, "isLoading")
	s.JSONEq(`60`, string(doc["cartTotal"]))
}

func (s *StoreSuite) TestRehydrate() {
	s.store.Login(s.ctx, &user.User{UserID: 3, FirstName: "Ravi"}, &user.Tokens{AccessToken: "a", RefreshToken: "r"})
	s.store.AddToCart(s.ctx, cart.LineFromProduct(tomato()))
	s.store.AddToCart(s.ctx, cart.LineFromProduct(tomato()))
	s.store.AddProductToFavorites(s.ctx, tomato())
	s.Require().NoError(s.store.SetLanguage(s.ctx, "ta"))
	s.Require().NoError(s.store.SetSelectedLocation(s.ctx, "Madurai"))
	s.store.SetProducts([]catalog.Product{tomato()})

	got := s.reload()
	snap := got.Snapshot()
	s.True(snap.IsAuthenticated)
	s.Equal(int64(3), snap.User.UserID)
	s.Equal(catalog.LocaleTamil, snap.Language)
	s.Equal("Madurai", snap.SelectedLocation)
	s.Require().Len(snap.CartItems, 1)
	s.Equal(2, snap.CartItems[0].Quantity)
	s.Equal(catalog.Rupees(120), snap.CartTotal)
	s.True(got.IsFavorite(1))
	s.Empty(got.Products())
}

func (s *StoreSuite) TestRehydrateIgnoresPersistedTotal() {
	raw := `{"cartItems":[{"productId":1,"measurementPrice":10,"quantity":3}],"cartTotal":999,"language":"en"}`
	s.Require().NoError(s.backend.Set(s.ctx, SnapshotKey, []byte(raw)))

	got := s.reload()
	s.Equal(catalog.Rupees(30), got.CartTotal())
}

func (s *StoreSuite) TestRehydrateDiscardsGarbage() {
	s.Require().NoError(s.backend.Set(s.ctx, SnapshotKey, []byte("{not json")))

	got := s.reload()
	s.Equal("Chennai", got.Snapshot().SelectedLocation)
	s.Empty(got.CartItems())
}

func (s *StoreSuite) TestRehydrateDropsTokensWithoutUser() {
	raw := `{"tokens":{"accessToken":"a","refreshToken":"r"},"isAuthenticated":true}`
	s.Require().NoError(s.backend.Set(s.ctx, SnapshotKey, []byte(raw)))

	got := s.reload()
	s.False(got.IsAuthenticated())
	s.Nil(got.Tokens())
}

func (s *StoreSuite) TestFavoritesAreIdempotent() {
	s.store.AddProductToFavorites(s.ctx, tomato())
	ch := s.store.AddToFavorites(s.ctx, favorite.Product{ProductID: 1})

	s.False(ch.Changed())
	s.Len(s.store.Favorites(), 1)

	removed := s.store.RemoveFromFavorites(s.ctx, 1)
	s.True(removed.Changed())
	s.False(s.store.IsFavorite(1))

	s.store.RevertFavorite(s.ctx, removed)
	s.True(s.store.IsFavorite(1))
}

func (s *StoreSuite) TestRevertCart() {
	ch := s.store.AddToCart(s.ctx, cart.LineFromProduct(tomato()))
	s.store.RevertCart(s.ctx, ch)

	s.Empty(s.store.CartItems())
	s.Empty(s.reload().CartItems())
}

func (s *StoreSuite) TestUpdateQuantityZeroRemoves() {
	s.store.AddToCart(s.ctx, cart.LineFromProduct(tomato()))
	ch := s.store.UpdateCartQuantity(s.ctx, 1, 0)

	s.True(ch.Removed())
	s.Empty(s.store.CartItems())
	s.Equal(catalog.Money(0), s.store.CartTotal())
}

func (s *StoreSuite) TestSetLanguageRejectsUnknown() {
	s.Error(s.store.SetLanguage(s.ctx, "fr"))
	s.Equal(catalog.LocaleEnglish, s.store.Language())
	s.ErrorIs(s.store.SetSelectedLocation(s.ctx, ""), ErrEmptyLocation)
	s.ErrorIs(s.store.SetSelectedLocation(s.ctx, "   "), ErrEmptyLocation)
}

func (s *StoreSuite) TestProductsCache() {
	s.store.SetProducts([]catalog.Product{tomato()})
	s.store.AppendProducts([]catalog.Product{{ProductID: 2}})
	s.Len(s.store.Products(), 2)

	s.store.SetProducts(nil)
	s.Empty(s.store.Products())
}

func (s *StoreSuite) TestAddresses() {
	home := s.store.AddAddress(s.ctx, user.Address{AddressType: user.AddressTypeHome, FullName: "Asha", City: "Chennai"})
	work := s.store.AddAddress(s.ctx, user.Address{AddressType: user.AddressTypeWork, FullName: "Asha", City: "Chennai"})

	s.True(home.IsDefault)
	s.Require().NoError(s.store.SetDefaultAddress(s.ctx, work.ID))

	got := s.reload().Addresses()
	s.Require().Len(got, 2)
	s.Equal(work.ID, got[0].ID)
	s.True(got[0].IsDefault)

	s.Require().NoError(s.store.RemoveAddress(s.ctx, work.ID))
	s.ErrorIs(s.store.RemoveAddress(s.ctx, work.ID), user.ErrAddressNotFound)
}

func (s *StoreSuite) TestPersistFailureKeepsMemoryState() {
	failing := &failingStorage{Durable: s.backend, fail: true}
	st := New(failing, logger.Discard(), DefaultDefaults)

	st.AddToCart(s.ctx, cart.LineFromProduct(tomato()))

	s.Len(st.CartItems(), 1)
	s.Error(st.LastPersistError())

	failing.fail = false
	st.AddToCart(s.ctx, cart.LineFromProduct(tomato()))
	s.NoError(st.LastPersistError())
}

func (s *StoreSuite) TestPersistSurvivesCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	s.store.AddToCart(ctx, cart.LineFromProduct(tomato()))
	s.Len(s.reload().CartItems(), 1)
}

func (s *StoreSuite) TestConcurrentMutations() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.store.AddToCart(s.ctx, cart.LineFromProduct(tomato()))
		}()
	}
	wg.Wait()

	line, ok := s.store.CartLine(1)
	s.Require().True(ok)
	s.Equal(50, line.Quantity)
	s.Equal(catalog.Rupees(3000), s.store.CartTotal())
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func TestRegistryIsolatesDevices(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	reg := NewRegistry(backend, "easyway", DefaultDefaults, logger.Discard())

	a, err := reg.Get(ctx, "device-a")
	require.NoError(t, err)
	b, err := reg.Get(ctx, "device-b")
	require.NoError(t, err)

	a.AddToCart(ctx, cart.LineFromProduct(tomato()))

	assert.Len(t, a.CartItems(), 1)
	assert.Empty(t, b.CartItems())

	again, err := reg.Get(ctx, "device-a")
	require.NoError(t, err)
	assert.Same(t, a, again)
	assert.Contains(t, backend.Keys(), "easyway:device:device-a:"+SnapshotKey)

	reg.Evict("device-a")
	reloaded, err := reg.Get(ctx, "device-a")
	require.NoError(t, err)
	assert.NotSame(t, a, reloaded)
	assert.Len(t, reloaded.CartItems(), 1)

	_, err = reg.Get(ctx, "")
	assert.Error(t, err)
	assert.NoError(t, reg.Health(ctx))
}
