package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func home(name string) Address {
	return Address{
		AddressType:  AddressTypeHome,
		FullName:     name,
		PhoneNumber:  "9876543210",
		AddressLine1: "12 Anna Salai",
		City:         "Chennai",
		State:        "Tamil Nadu",
		Pincode:      "600002",
	}
}

func TestAddressBookFirstAddressIsDefault(t *testing.T) {
	b := NewAddressBook(nil)

	a := b.Add(home("Kavya"))

	assert.NotEmpty(t, a.ID)
	assert.True(t, a.IsDefault)
	assert.Equal(t, DefaultCountry, a.Country)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestAddressBookSingleDefault(t *testing.T) {
	b := NewAddressBook(nil)
	first := b.Add(home("A"))

	second := home("B")
	second.IsDefault = true
	added := b.Add(second)

	def, ok := b.Default()
	require.True(t, ok)
	assert.Equal(t, added.ID, def.ID)

	got, err := b.Get(first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)

	list := b.List()
	require.Len(t, list, 2)
	assert.Equal(t, added.ID, list[0].ID)
}

func TestAddressBookRemoveDefaultPromotesNext(t *testing.T) {
	b := NewAddressBook(nil)
	first := b.Add(home("A"))
	second := b.Add(home("B"))

	require.NoError(t, b.Remove(first.ID))

	def, ok := b.Default()
	require.True(t, ok)
	assert.Equal(t, second.ID, def.ID)
	assert.ErrorIs(t, b.Remove(first.ID), ErrAddressNotFound)
}

func TestAddressBookUpdate(t *testing.T) {
	b := NewAddressBook(nil)
	a := b.Add(home("A"))

	changed := home("A Updated")
	changed.City = "Madurai"
	updated, err := b.Update(a.ID, changed)
	require.NoError(t, err)

	assert.Equal(t, a.ID, updated.ID)
	assert.Equal(t, a.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Madurai", updated.City)
	assert.True(t, b.List()[0].IsDefault)

	_, err = b.Update("missing", changed)
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestAddressBookSetDefault(t *testing.T) {
	b := NewAddressBook(nil)
	b.Add(home("A"))
	second := b.Add(home("B"))

	require.NoError(t, b.SetDefault(second.ID))
	def, _ := b.Default()
	assert.Equal(t, second.ID, def.ID)
	assert.ErrorIs(t, b.SetDefault("nope"), ErrAddressNotFound)
}

func TestNewAddressBookRepairsDefaults(t *testing.T) {
	b := NewAddressBook([]Address{
		{ID: "a", IsDefault: true},
		{ID: "b", IsDefault: true},
	})

	def, _ := b.Default()
	assert.Equal(t, "a", def.ID)
	assert.False(t, b.List()[1].IsDefault)
}

func TestOneLine(t *testing.T) {
	a := home("A")
	a.Country = "India"
	assert.Equal(t, "12 Anna Salai, Chennai, Tamil Nadu, 600002, India", a.OneLine())
}
