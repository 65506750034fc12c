// internal/storefront/service.go
package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/easyway-storefront/internal/api"
	"github.com/your-org/easyway-storefront/internal/config"
	"github.com/your-org/easyway-storefront/internal/domain/catalog"
	"github.com/your-org/easyway-storefront/internal/pkg/auth"
	"github.com/your-org/easyway-storefront/internal/store"
	"github.com/your-org/easyway-storefront/internal/validation"
)

var (
	// ErrLoginRequired is returned by operations that need a signed-in user
	ErrLoginRequired = errors.New("login required")
	// ErrEmptyCart is returned when checking out with nothing in the cart
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCartNotSynced is returned when the backend holds no cart items to order
	ErrCartNotSynced = errors.New("cart has no server-side items")
)

// Outcome reports how an optimistic mutation was reconciled with the backend
type Outcome string

const (
	// OutcomeConfirmed means the backend accepted the change
	OutcomeConfirmed Outcome = "confirmed"
	// OutcomeLocalOnly means the change was applied locally and not sent
	OutcomeLocalOnly Outcome = "local_only"
	// OutcomeRolledBack means the backend refused and the local change was undone
	OutcomeRolledBack Outcome = "rolled_back"
	// OutcomeUnchanged means there was nothing to do
	OutcomeUnchanged Outcome = "unchanged"
)

// Service composes the per-device stores with the backend client
type Service struct {
	client    *api.Client
	stores    *store.Registry
	validator *validation.Validator
	inspector *auth.TokenInspector
	config    *config.Config
	log       logrus.FieldLogger
}

// NewService creates a new storefront service
func NewService(client *api.Client, stores *store.Registry, v *validation.Validator, inspector *auth.TokenInspector, cfg *config.Config, log logrus.FieldLogger) *Service {
	return &Service{
		client:    client,
		stores:    stores,
		validator: v,
		inspector: inspector,
		config:    cfg,
		log:       log,
	}
}

// Validator exposes the form validator used by the service
func (s *Service) Validator() *validation.Validator {
	return s.validator
}

// Health reports the durable storage health
func (s *Service) Health(ctx context.Context) error {
	return s.stores.Health(ctx)
}

// Device is the storefront as seen by one device
type Device struct {
	ID    string
	svc   *Service
	store *store.Store
	api   *api.Session
	log   logrus.FieldLogger
}

// Device loads the state for deviceID and binds a backend session to it
func (s *Service) Device(ctx context.Context, deviceID string) (*Device, error) {
	st, err := s.stores.Get(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load device state: %w", err)
	}

	d := &Device{
		ID:    deviceID,
		svc:   s,
		store: st,
		log:   s.log.WithField("device_id", deviceID),
	}
	d.api = s.client.Session(st, d.handleUnauthorized)
	return d, nil
}

// Store exposes the device's state store
func (d *Device) Store() *store.Store {
	return d.store
}

// State returns the full device state
func (d *Device) State() store.State {
	return d.store.State()
}

// handleUnauthorized keeps the session consistent when the backend rejects the token
func (d *Device) handleUnauthorized(ctx context.Context) {
	if d.store.IsAuthenticated() {
		d.log.Warn("Backend rejected credentials, signing device out")
	}
	d.store.Logout(ctx)
}

// ensureFresh refreshes the access token ahead of a call when it is about to expire
func (d *Device) ensureFresh(ctx context.Context) {
	tokens := d.store.Tokens()
	if tokens == nil || !d.svc.inspector.NeedsRefresh(tokens.AccessToken) {
		return
	}
	if err := d.RefreshSession(ctx); err != nil {
		d.log.WithError(err).Warn("Proactive token refresh failed")
	}
}

// resolveProduct finds display data for a product, from the cache first
func (d *Device) resolveProduct(ctx context.Context, productID int64) (*catalog.Product, error) {
	for _, p := range d.store.Products() {
		if p.ProductID == productID {
			return &p, nil
		}
	}

	p, err := d.api.ProductInfo(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", productID, err)
	}
	return p, nil
}

func (d *Device) requireLogin() error {
	if !d.store.IsAuthenticated() {
		return ErrLoginRequired
	}
	return nil
}
