package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrAddressNotFound is returned for unknown address ids
var ErrAddressNotFound = errors.New("address not found")

// Address types offered by the delivery form
const (
	AddressTypeHome  = "home"
	AddressTypeWork  = "work"
	AddressTypeOther = "other"
)

// DefaultCountry is applied when the form leaves the country empty
const DefaultCountry = "India"

// Address is a delivery address kept in the device's address book
type Address struct {
	ID                   string    `json:"id"`
	AddressType          string    `json:"addressType"`
	FullName             string    `json:"fullName"`
	PhoneNumber          string    `json:"phoneNumber"`
	AlternatePhoneNumber string    `json:"alternatePhoneNumber,omitempty"`
	AddressLine1         string    `json:"addressLine1"`
	AddressLine2         string    `json:"addressLine2,omitempty"`
	Landmark             string    `json:"landmark,omitempty"`
	City                 string    `json:"city"`
	State                string    `json:"state"`
	Pincode              string    `json:"pincode"`
	Country              string    `json:"country"`
	IsDefault            bool      `json:"isDefault"`
	DeliveryInstructions string    `json:"deliveryInstructions,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// OneLine renders the address for display
func (a *Address) OneLine() string {
	parts := []string{a.AddressLine1, a.AddressLine2, a.Landmark, a.City, a.State, a.Pincode, a.Country}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

// AddressBook holds addresses with at most one default
type AddressBook struct {
	addresses []Address
	now       func() time.Time
}

// NewAddressBook builds a book from persisted addresses
func NewAddressBook(addresses []Address) *AddressBook {
	b := &AddressBook{
		addresses: append([]Address(nil), addresses...),
		now:       func() time.Time { return time.Now().UTC() },
	}
	b.ensureSingleDefault("")
	return b
}

// List returns the addresses, default first
func (b *AddressBook) List() []Address {
	out := make([]Address, 0, len(b.addresses))
	for _, a := range b.addresses {
		if a.IsDefault {
			out = append(out, a)
		}
	}
	for _, a := range b.addresses {
		if !a.IsDefault {
			out = append(out, a)
		}
	}
	return out
}

// Get retrieves a specific address
func (b *AddressBook) Get(id string) (Address, error) {
	if i := b.indexOf(id); i >= 0 {
		return b.addresses[i], nil
	}
	return Address{}, ErrAddressNotFound
}

// Default returns the default address, if any
func (b *AddressBook) Default() (Address, bool) {
	for _, a := range b.addresses {
		if a.IsDefault {
			return a, true
		}
	}
	return Address{}, false
}

// Add stores a new address. The first address always becomes the default.
func (b *AddressBook) Add(a Address) Address {
	now := b.now()
	a.ID = uuid.NewString()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Country == "" {
		a.Country = DefaultCountry
	}
	if len(b.addresses) == 0 {
		a.IsDefault = true
	}

	b.addresses = append(b.addresses, a)
	if a.IsDefault {
		b.ensureSingleDefault(a.ID)
	}
	return a
}

// Update replaces the address fields, keeping id and creation time
func (b *AddressBook) Update(id string, a Address) (Address, error) {
	i := b.indexOf(id)
	if i < 0 {
		return Address{}, ErrAddressNotFound
	}

	existing := b.addresses[i]
	a.ID = existing.ID
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = b.now()
	if a.Country == "" {
		a.Country = DefaultCountry
	}
	b.addresses[i] = a

	if a.IsDefault {
		b.ensureSingleDefault(a.ID)
	} else {
		b.ensureSingleDefault("")
	}
	return a, nil
}

// Remove deletes an address; removing the default promotes the oldest remaining one
func (b *AddressBook) Remove(id string) error {
	i := b.indexOf(id)
	if i < 0 {
		return ErrAddressNotFound
	}
	b.addresses = append(b.addresses[:i], b.addresses[i+1:]...)
	b.ensureSingleDefault("")
	return nil
}

// SetDefault marks one address as default and unsets the others
func (b *AddressBook) SetDefault(id string) error {
	if b.indexOf(id) < 0 {
		return ErrAddressNotFound
	}
	b.ensureSingleDefault(id)
	return nil
}

// Addresses returns the stored order, used for persistence
func (b *AddressBook) Addresses() []Address {
	return append([]Address(nil), b.addresses...)
}

// ensureSingleDefault makes preferred the default when given, otherwise keeps
// the first existing default, otherwise promotes the first address.
func (b *AddressBook) ensureSingleDefault(preferred string) {
	if len(b.addresses) == 0 {
		return
	}

	target := preferred
	if target == "" {
		for _, a := range b.addresses {
			if a.IsDefault {
				target = a.ID
				break
			}
		}
	}
	if target == "" {
		target = b.addresses[0].ID
	}

	for i := range b.addresses {
		b.addresses[i].IsDefault = b.addresses[i].ID == target
	}
}

func (b *AddressBook) indexOf(id string) int {
	for i := range b.addresses {
		if b.addresses[i].ID == id {
			return i
		}
	}
	return -1
}
