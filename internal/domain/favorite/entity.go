package favorite

import (
	"github.com/your-org/easyway-storefront/internal/domain/catalog"
)

// Product is a favorited product with cached display fields
type Product struct {
	ProductID          int64          `json:"productId"`
	NameTranslations   catalog.Names  `json:"nameTranslations"`
	HeroImageSignedURL string         `json:"heroImageSignedUrl"`
	MeasurementPrice   *catalog.Money `json:"measurementSellingPrice,omitempty"`
	Description        *string        `json:"description,omitempty"`
	MeasurementValue   *float64       `json:"measurementValue,omitempty"`
	MeasurementUnit    *string        `json:"measurementUnit,omitempty"`
	IsFavourite        bool           `json:"isFavourite"`
}

// FromProduct normalises a full catalog product into a favorite
func FromProduct(p catalog.Product) Product {
	price := p.MeasurementPrice
	description := p.Description
	value := p.MeasurementValue
	unit := p.MeasurementUnit

	return Product{
		ProductID:          p.ProductID,
		NameTranslations:   append(catalog.Names(nil), p.NameTranslations...),
		HeroImageSignedURL: p.HeroImageSignedURL,
		MeasurementPrice:   &price,
		Description:        &description,
		MeasurementValue:   &value,
		MeasurementUnit:    &unit,
		IsFavourite:        true,
	}
}

// Normalize marks an already favorite-shaped value as a favorite
func Normalize(p Product) Product {
	p.NameTranslations = append(catalog.Names(nil), p.NameTranslations...)
	p.IsFavourite = true
	return p
}

// Change describes one favorite mutation
type Change struct {
	ProductID int64    `json:"productId"`
	Position  int      `json:"-"`
	Added     *Product `json:"added,omitempty"`
	Removed   *Product `json:"removed,omitempty"`
}

// Changed reports whether the list was altered
func (c Change) Changed() bool {
	return c.Added != nil || c.Removed != nil
}

// List keeps at most one entry per product
type List struct {
	items []Product
}

// New builds a list, keeping the first entry for each product
func New(items []Product) *List {
	l := &List{}
	for _, p := range items {
		l.Add(p)
	}
	return l
}

// Items returns a copy of the favorites in insertion order
func (l *List) Items() []Product {
	out := make([]Product, len(l.items))
	copy(out, l.items)
	return out
}

// Len is the number of favorites
func (l *List) Len() int {
	return len(l.items)
}

// Contains reports whether the product is a favorite
func (l *List) Contains(productID int64) bool {
	return l.indexOf(productID) >= 0
}

// Add appends the product unless it is already present
func (l *List) Add(p Product) Change {
	if l.Contains(p.ProductID) {
		return Change{ProductID: p.ProductID, Position: -1}
	}
	p = Normalize(p)
	l.items = append(l.items, p)
	return Change{ProductID: p.ProductID, Position: len(l.items) - 1, Added: &p}
}

// Remove deletes the product if present
func (l *List) Remove(productID int64) Change {
	i := l.indexOf(productID)
	if i < 0 {
		return Change{ProductID: productID, Position: -1}
	}
	removed := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	return Change{ProductID: productID, Position: i, Removed: &removed}
}

// Revert undoes a change produced by this list
func (l *List) Revert(c Change) {
	switch {
	case c.Added != nil:
		if i := l.indexOf(c.ProductID); i >= 0 {
			l.items = append(l.items[:i], l.items[i+1:]...)
		}
	case c.Removed != nil && !l.Contains(c.ProductID):
		pos := c.Position
		if pos < 0 || pos > len(l.items) {
			pos = len(l.items)
		}
		l.items = append(l.items, Product{})
		copy(l.items[pos+1:], l.items[pos:])
		l.items[pos] = *c.Removed
	}
}

func (l *List) indexOf(productID int64) int {
	for i := range l.items {
		if l.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
