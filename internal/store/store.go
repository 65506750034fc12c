// internal/store/store.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/easyway-storefront/internal/domain/cart"
	"github.com/your-org/easyway-storefront/internal/domain/catalog"
	"github.com/your-org/easyway-storefront/internal/domain/favorite"
	"github.com/your-org/easyway-storefront/internal/domain/user"
	"github.com/your-org/easyway-storefront/internal/infrastructure/storage"
)

// Durable storage keys
const (
	SnapshotKey     = "easyway-store"
	AccessTokenKey  = "auth-token"
	RefreshTokenKey = "refresh-token"
)

const persistTimeout = 5 * time.Second

// ErrEmptyLocation is returned when clearing the delivery location
var ErrEmptyLocation = errors.New("location must not be empty")

// Defaults seed a store that has nothing persisted yet
type Defaults struct {
	Language catalog.Locale
	Location string
}

// DefaultDefaults matches the storefront's out-of-the-box settings
var DefaultDefaults = Defaults{Language: catalog.DefaultLocale, Location: "Chennai"}

// Snapshot is the persisted subset of the store, written whole on every mutation
type Snapshot struct {
	User             *user.User         `json:"user"`
	Tokens           *user.Tokens       `json:"tokens"`
	IsAuthenticated  bool               `json:"isAuthenticated"`
	Language         catalog.Locale     `json:"language"`
	SelectedLocation string             `json:"selectedLocation"`
	CartItems        []cart.Line        `json:"cartItems"`
	CartTotal        catalog.Money      `json:"cartTotal"`
	Favorites        []favorite.Product `json:"favorites"`
	Addresses        []user.Address     `json:"addresses"`
}

// State is a read-only view including the fields that are not persisted
type State struct {
	Snapshot
	Products  []catalog.Product `json:"products"`
	IsLoading bool              `json:"isLoading"`
}

// Store is the single source of truth for one device's session, cart and favorites.
// Methods are safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	storage storage.Durable
	log     logrus.FieldLogger

	user      *user.User
	tokens    *user.Tokens
	language  catalog.Locale
	location  string
	cart      *cart.Cart
	favorites *favorite.List
	addresses *user.AddressBook

	products []catalog.Product
	loading  bool

	lastPersistErr error
}

// New creates an empty store with defaults
func New(durable storage.Durable, log logrus.FieldLogger, defaults Defaults) *Store {
	if defaults.Language == "" {
		defaults.Language = DefaultDefaults.Language
	}
	if defaults.Location == "" {
		defaults.Location = DefaultDefaults.Location
	}

	return &Store{
		storage:   durable,
		log:       log,
		language:  defaults.Language,
		location:  defaults.Location,
		cart:      cart.New(nil),
		favorites: favorite.New(nil),
		addresses: user.NewAddressBook(nil),
	}
}

// Load rehydrates a store from its persisted snapshot. A snapshot that cannot be
// decoded is discarded and the store starts from defaults.
func Load(ctx context.Context, durable storage.Durable, log logrus.FieldLogger, defaults Defaults) (*Store, error) {
	s := New(durable, log, defaults)

	raw, err := durable.Get(ctx, SnapshotKey)
	if errors.Is(err, storage.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted state: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		log.WithError(err).Warn("Discarding unreadable persisted state")
		return s, nil
	}

	s.restore(snap)
	return s, nil
}

func (s *Store) restore(snap Snapshot) {
	s.user = snap.User
	s.tokens = snap.Tokens
	if s.user == nil {
		// a session without a user is not a session
		s.tokens = nil
	}
	if locale, err := catalog.ParseLocale(string(snap.Language)); err == nil {
		s.language = locale
	}
	if snap.SelectedLocation != "" {
		s.location = snap.SelectedLocation
	}
	// the total is derived from the lines, the persisted value is ignored
	s.cart = cart.New(snap.CartItems)
	s.favorites = favorite.New(snap.Favorites)
	s.addresses = user.NewAddressBook(snap.Addresses)
}

// Session

// SetUser sets the current user; the authenticated flag follows it
func (s *Store) SetUser(ctx context.Context, u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = cloneUser(u)
	s.persist(ctx)
}

// SetTokens sets the token pair and mirrors it to the side-channel keys
func (s *Store) SetTokens(ctx context.Context, tokens *user.Tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setTokens(ctx, tokens)
	s.persist(ctx)
}

// Login sets user and tokens together
func (s *Store) Login(ctx context.Context, u *user.User, tokens *user.Tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = cloneUser(u)
	s.setTokens(ctx, tokens)
	s.persist(ctx)
}

// Logout clears user, tokens and the side-channel keys together
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.setTokens(ctx, nil)
	s.persist(ctx)
}

// IsAuthenticated reports whether a user is signed in
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// User returns a copy of the current user, or nil
func (s *Store) User() *user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneUser(s.user)
}

// Tokens returns a copy of the current token pair, or nil
func (s *Store) Tokens() *user.Tokens {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tokens == nil {
		return nil
	}
	t := *s.tokens
	return &t
}

// AccessToken reads the side-channel access token used to authorise API requests
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	raw, err := s.storage.Get(ctx, AccessTokenKey)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// RefreshToken reads the side-channel refresh token
func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	raw, err := s.storage.Get(ctx, RefreshTokenKey)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (s *Store) setTokens(ctx context.Context, tokens *user.Tokens) {
	ctx, cancel := detached(ctx)
	defer cancel()

	if tokens == nil {
		s.tokens = nil
		s.sideChannel(s.storage.Delete(ctx, AccessTokenKey))
		s.sideChannel(s.storage.Delete(ctx, RefreshTokenKey))
		return
	}

	t := *tokens
	s.tokens = &t
	s.sideChannel(s.storage.Set(ctx, AccessTokenKey, []byte(t.AccessToken)))
	s.sideChannel(s.storage.Set(ctx, RefreshTokenKey, []byte(t.RefreshToken)))
}

func (s *Store) sideChannel(err error) {
	if err != nil {
		s.lastPersistErr = err
		s.log.WithError(err).Warn("Failed to update token side channel")
	}
}

// Preferences

// SetLanguage switches the display locale
func (s *Store) SetLanguage(ctx context.Context, code string) error {
	locale, err := catalog.ParseLocale(code)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.language = locale
	s.persist(ctx)
	return nil
}

// Language returns the display locale
func (s *Store) Language() catalog.Locale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// SetSelectedLocation changes the delivery location
func (s *Store) SetSelectedLocation(ctx context.Context, location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return ErrEmptyLocation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.location = location
	s.persist(ctx)
	return nil
}

// Cart

// AddToCart increments an existing line or appends a new one with quantity 1
func (s *Store) AddToCart(ctx context.Context, item cart.Line) cart.Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	change := s.cart.Add(item)
	s.persist(ctx)
	return change
}

// RemoveFromCart deletes the product's line; absent products are ignored
func (s *Store) RemoveFromCart(ctx context.Context, productID int64) cart.Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	change := s.cart.Remove(productID)
	if change.Changed() {
		s.persist(ctx)
	}
	return change
}

// UpdateCartQuantity sets the product's quantity; zero or less removes the line
func (s *Store) UpdateCartQuantity(ctx context.Context, productID int64, quantity int) cart.Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	change := s.cart.UpdateQuantity(productID, quantity)
	if change.Changed() {
		s.persist(ctx)
	}
	return change
}

// RevertCart undoes an earlier cart change
func (s *Store) RevertCart(ctx context.Context, change cart.Change) {
	if !change.Changed() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Revert(change)
	s.persist(ctx)
}

// AssignCardItemID records the server-side id of a product's line
func (s *Store) AssignCardItemID(ctx context.Context, productID, cardItemID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.AssignCardItemID(productID, cardItemID) {
		s.persist(ctx)
	}
}

// SetCartItems replaces the cart with server-side lines
func (s *Store) SetCartItems(ctx context.Context, lines []cart.Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = cart.New(lines)
	s.persist(ctx)
}

// ClearCart empties the cart, used after a successful checkout
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	s.persist(ctx)
}

// CartItems returns the current lines
func (s *Store) CartItems() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// CartLine looks up one product's line
func (s *Store) CartLine(productID int64) (cart.Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Line(productID)
}

// CartTotal is the derived cart total
func (s *Store) CartTotal() catalog.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// CheckoutSummary returns the server ids and total quantity of the cart
func (s *Store) CheckoutSummary() (cardItemIDs []int64, totalQuantity int, lines int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.CardItemIDs(), s.cart.TotalQuantity(), s.cart.Len()
}

// Favorites

// AddToFavorites adds a favorite-shaped product unless already present
func (s *Store) AddToFavorites(ctx context.Context, p favorite.Product) favorite.Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	change := s.favorites.Add(p)
	if change.Changed() {
		s.persist(ctx)
	}
	return change
}

// AddProductToFavorites normalises a catalog product and adds it
func (s *Store) AddProductToFavorites(ctx context.Context, p catalog.Product) favorite.Change {
	return s.AddToFavorites(ctx, favorite.FromProduct(p))
}

// RemoveFromFavorites deletes the favorite if present
func (s *Store) RemoveFromFavorites(ctx context.Context, productID int64) favorite.Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	change := s.favorites.Remove(productID)
	if change.Changed() {
		s.persist(ctx)
	}
	return change
}

// RevertFavorite undoes an earlier favorite change
func (s *Store) RevertFavorite(ctx context.Context, change favorite.Change) {
	if !change.Changed() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.favorites.Revert(change)
	s.persist(ctx)
}

// SetFavorites replaces the favorites with the server's list
func (s *Store) SetFavorites(ctx context.Context, items []favorite.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favorites = favorite.New(items)
	s.persist(ctx)
}

// Favorites returns the current favorites
func (s *Store) Favorites() []favorite.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.Items()
}

// IsFavorite reports whether the product is a favorite
func (s *Store) IsFavorite(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.Contains(productID)
}

// Products

// SetProducts replaces the product cache wholesale
func (s *Store) SetProducts(products []catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]catalog.Product(nil), products...)
}

// AppendProducts extends the product cache with a further page
func (s *Store) AppendProducts(products []catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, products...)
}

// Products returns the product cache
func (s *Store) Products() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.Product(nil), s.products...)
}

// SetLoading toggles the loading flag
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// Addresses

// Addresses lists the address book, default first
func (s *Store) Addresses() []user.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addresses.List()
}

// Address returns one address
func (s *Store) Address(id string) (user.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addresses.Get(id)
}

// AddAddress stores a new address
func (s *Store) AddAddress(ctx context.Context, a user.Address) user.Address {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := s.addresses.Add(a)
	s.persist(ctx)
	return added
}

// UpdateAddress replaces an address
func (s *Store) UpdateAddress(ctx context.Context, id string, a user.Address) (user.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.addresses.Update(id, a)
	if err != nil {
		return user.Address{}, err
	}
	s.persist(ctx)
	return updated, nil
}

// RemoveAddress deletes an address
func (s *Store) RemoveAddress(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.addresses.Remove(id); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// SetDefaultAddress marks an address as the default
func (s *Store) SetDefaultAddress(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.addresses.SetDefault(id); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// Views

// Snapshot returns the persisted subset
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// State returns everything, including the unpersisted product cache
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Snapshot:  s.snapshot(),
		Products:  append([]catalog.Product(nil), s.products...),
		IsLoading: s.loading,
	}
}

// LastPersistError is the most recent storage write failure, if any
func (s *Store) LastPersistError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPersistErr
}

func (s *Store) snapshot() Snapshot {
	var tokens *user.Tokens
	if s.tokens != nil {
		t := *s.tokens
		tokens = &t
	}

	return Snapshot{
		User:             cloneUser(s.user),
		Tokens:           tokens,
		IsAuthenticated:  s.user != nil,
		Language:         s.language,
		SelectedLocation: s.location,
		CartItems:        s.cart.Lines(),
		CartTotal:        s.cart.Total(),
		Favorites:        s.favorites.Items(),
		Addresses:        s.addresses.Addresses(),
	}
}

// persist writes the full snapshot. Failures are logged and kept, never returned.
func (s *Store) persist(ctx context.Context) {
	raw, err := json.Marshal(s.snapshot())
	if err != nil {
		s.lastPersistErr = err
		s.log.WithError(err).Error("Failed to encode state snapshot")
		return
	}

	ctx, cancel := detached(ctx)
	defer cancel()

	if err := s.storage.Set(ctx, SnapshotKey, raw); err != nil {
		s.lastPersistErr = err
		s.log.WithError(err).Warn("Failed to persist state snapshot")
		return
	}
	s.lastPersistErr = nil
}

// detached keeps request values but not request cancellation, so a client
// disconnect cannot leave a half-written snapshot behind.
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
}

func cloneUser(u *user.User) *user.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Role != nil {
		r := *u.Role
		r.Permissions = append([]user.Permission(nil), u.Role.Permissions...)
		c.Role = &r
	}
	return &c
}
