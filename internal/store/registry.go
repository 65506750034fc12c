// internal/store/registry.go
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/your-org/easyway-storefront/internal/infrastructure/storage"
)

const (
	// DefaultMaxDevices caps the stores held in memory
	DefaultMaxDevices = 10000
	// DefaultIdleTTL drops stores that have not been used for this long
	DefaultIdleTTL = 30 * time.Minute
)

// Registry hands out one Store per device, each persisted under its own key prefix.
// Stores are cached in a bounded LRU; an evicted device is rehydrated from storage
// on its next request.
type Registry struct {
	backend   storage.Durable
	namespace string
	defaults  Defaults
	log       logrus.FieldLogger
	stores    *expirable.LRU[string, *Store]
	loads     singleflight.Group
}

// RegistryOption configures a Registry
type RegistryOption func(*registryLimits)

type registryLimits struct {
	maxDevices int
	idleTTL    time.Duration
}

// WithCapacity bounds the cache. Non-positive values keep the defaults.
func WithCapacity(maxDevices int, idleTTL time.Duration) RegistryOption {
	return func(l *registryLimits) {
		if maxDevices > 0 {
			l.maxDevices = maxDevices
		}
		if idleTTL > 0 {
			l.idleTTL = idleTTL
		}
	}
}

// NewRegistry creates a registry over a shared backend
func NewRegistry(backend storage.Durable, namespace string, defaults Defaults, log logrus.FieldLogger, opts ...RegistryOption) *Registry {
	limits := registryLimits{maxDevices: DefaultMaxDevices, idleTTL: DefaultIdleTTL}
	for _, opt := range opts {
		opt(&limits)
	}

	onEvict := func(deviceID string, _ *Store) {
		log.WithField("device_id", deviceID).Debug("Device store evicted from cache")
	}

	return &Registry{
		backend:   backend,
		namespace: namespace,
		defaults:  defaults,
		log:       log,
		stores:    expirable.NewLRU[string, *Store](limits.maxDevices, onEvict, limits.idleTTL),
	}
}

// Get returns the device's store, rehydrating it on first use. Loads for
// different devices run concurrently; concurrent loads of one device share a result.
func (r *Registry) Get(ctx context.Context, deviceID string) (*Store, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("device id is required")
	}

	if s, ok := r.stores.Get(deviceID); ok {
		// re-adding slides the idle deadline
		r.stores.Add(deviceID, s)
		return s, nil
	}

	v, err, _ := r.loads.Do(deviceID, func() (any, error) {
		if s, ok := r.stores.Get(deviceID); ok {
			return s, nil
		}

		durable := storage.WithNamespace(r.backend, r.namespace, "device", deviceID)
		s, err := Load(ctx, durable, r.log.WithField("device_id", deviceID), r.defaults)
		if err != nil {
			return nil, err
		}

		r.stores.Add(deviceID, s)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Store), nil
}

// Evict drops the cached store; the next Get reloads it from storage
func (r *Registry) Evict(deviceID string) {
	r.stores.Remove(deviceID)
}

// Len is the number of cached stores
func (r *Registry) Len() int {
	return r.stores.Len()
}

// Health reports the backend's connectivity when it can
func (r *Registry) Health(ctx context.Context) error {
	if hc, ok := r.backend.(storage.HealthChecker); ok {
		return hc.Health(ctx)
	}
	return nil
}
