package storefront

import (
	"context"

	"github.com/your-org/easyway-storefront/internal/domain/catalog"
	"github.com/your-org/easyway-storefront/internal/domain/user"
	"github.com/your-org/easyway-storefront/internal/validation"
)

// Addresses lists the address book, default first
func (d *Device) Addresses() []user.Address {
	return d.store.Addresses()
}

// Address returns one address
func (d *Device) Address(id string) (user.Address, error) {
	return d.store.Address(id)
}

// AddAddress validates and stores a new delivery address
func (d *Device) AddAddress(ctx context.Context, form validation.DeliveryAddressForm) (user.Address, error) {
	form.Normalize()
	if err := d.svc.validator.Struct(form); err != nil {
		return user.Address{}, err
	}
	return d.store.AddAddress(ctx, form.Address()), nil
}

// UpdateAddress validates and replaces a delivery address
func (d *Device) UpdateAddress(ctx context.Context, id string, form validation.DeliveryAddressForm) (user.Address, error) {
	form.Normalize()
	if err := d.svc.validator.Struct(form); err != nil {
		return user.Address{}, err
	}
	return d.store.UpdateAddress(ctx, id, form.Address())
}

// RemoveAddress deletes a delivery address
func (d *Device) RemoveAddress(ctx context.Context, id string) error {
	return d.store.RemoveAddress(ctx, id)
}

// SetDefaultAddress marks a delivery address as the default
func (d *Device) SetDefaultAddress(ctx context.Context, id string) error {
	return d.store.SetDefaultAddress(ctx, id)
}

// Preferences are the display and delivery settings of a device
type Preferences struct {
	Language         catalog.Locale `json:"language"`
	SelectedLocation string         `json:"selectedLocation"`
}

// Preferences returns the current settings
func (d *Device) Preferences() Preferences {
	snap := d.store.Snapshot()
	return Preferences{Language: snap.Language, SelectedLocation: snap.SelectedLocation}
}

// SetLanguage switches the display locale
func (d *Device) SetLanguage(ctx context.Context, code string) error {
	return d.store.SetLanguage(ctx, code)
}

// SetSelectedLocation changes the delivery location
func (d *Device) SetSelectedLocation(ctx context.Context, location string) error {
	return d.store.SetSelectedLocation(ctx, location)
}
