// internal/domain/cart/entity.go
package cart

import (
	"github.com/your-org/easyway-storefront/internal/domain/catalog"
)

// Line is one product's quantity entry in the cart
type Line struct {
	CardItemID         int64         `json:"cardItemId,omitempty"` // server-side id, known after sync
	ProductID          int64         `json:"productId"`
	NameTranslations   catalog.Names `json:"nameTranslations"`
	HeroImageSignedURL string        `json:"heroImageSignedUrl"`
	UnitPrice          catalog.Money `json:"measurementPrice"`
	Quantity           int           `json:"quantity"`
}

// Subtotal is unit price times quantity
func (l Line) Subtotal() catalog.Money {
	return l.UnitPrice.Times(l.Quantity)
}

// LineFromProduct builds a single-unit line for a catalog product
func LineFromProduct(p catalog.Product) Line {
	return Line{
		ProductID:          p.ProductID,
		NameTranslations:   p.NameTranslations,
		HeroImageSignedURL: p.HeroImageSignedURL,
		UnitPrice:          p.MeasurementPrice,
		Quantity:           1,
	}
}

// Change records one line before and after a mutation so it can be reverted
type Change struct {
	ProductID int64 `json:"productId"`
	Position  int   `json:"-"`
	Before    *Line `json:"before,omitempty"`
	After     *Line `json:"after,omitempty"`
}

// Changed reports whether the mutation altered the cart
func (c Change) Changed() bool {
	switch {
	case c.Before == nil && c.After == nil:
		return false
	case c.Before == nil || c.After == nil:
		return true
	default:
		return !sameLine(*c.Before, *c.After)
	}
}

// Removed reports whether the mutation deleted the line
func (c Change) Removed() bool {
	return c.Before != nil && c.After == nil
}

// Cart holds the line items; the total is derived and never set directly
type Cart struct {
	lines []Line
	total catalog.Money
}

// New builds a cart from lines, merging duplicate products and dropping empty lines
func New(lines []Line) *Cart {
	c := &Cart{}
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if i := c.indexOf(l.ProductID); i >= 0 {
			c.lines[i].Quantity += l.Quantity
			if c.lines[i].CardItemID == 0 {
				c.lines[i].CardItemID = l.CardItemID
			}
			continue
		}
		c.lines = append(c.lines, cloneLine(l))
	}
	c.recompute()
	return c
}

// Lines returns a copy of the current lines in insertion order
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	for i, l := range c.lines {
		out[i] = cloneLine(l)
	}
	return out
}

// Line looks up the line for a product
func (c *Cart) Line(productID int64) (Line, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return cloneLine(c.lines[i]), true
	}
	return Line{}, false
}

// Total is the sum of price times quantity over all lines
func (c *Cart) Total() catalog.Money {
	return c.total
}

// TotalQuantity is the sum of quantities over all lines
func (c *Cart) TotalQuantity() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Len is the number of distinct products
func (c *Cart) Len() int {
	return len(c.lines)
}

// CardItemIDs lists the server-side ids of lines that have one
func (c *Cart) CardItemIDs() []int64 {
	ids := make([]int64, 0, len(c.lines))
	for _, l := range c.lines {
		if l.CardItemID != 0 {
			ids = append(ids, l.CardItemID)
		}
	}
	return ids
}

// Add increments an existing line by one, or appends the item with quantity 1
// whatever quantity it carries.
func (c *Cart) Add(item Line) Change {
	if i := c.indexOf(item.ProductID); i >= 0 {
		return c.UpdateQuantity(item.ProductID, c.lines[i].Quantity+1)
	}

	line := cloneLine(item)
	line.Quantity = 1
	c.lines = append(c.lines, line)
	c.recompute()

	after := cloneLine(line)
	return Change{ProductID: item.ProductID, Position: len(c.lines) - 1, After: &after}
}

// Remove deletes the product's line; an absent product is a no-op
func (c *Cart) Remove(productID int64) Change {
	i := c.indexOf(productID)
	if i < 0 {
		return Change{ProductID: productID, Position: -1}
	}

	before := cloneLine(c.lines[i])
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.recompute()

	return Change{ProductID: productID, Position: i, Before: &before}
}

// UpdateQuantity sets the product's quantity. Zero or negative removes the line.
func (c *Cart) UpdateQuantity(productID int64, quantity int) Change {
	if quantity <= 0 {
		return c.Remove(productID)
	}

	i := c.indexOf(productID)
	if i < 0 {
		return Change{ProductID: productID, Position: -1}
	}

	before := cloneLine(c.lines[i])
	c.lines[i].Quantity = quantity
	c.recompute()

	after := cloneLine(c.lines[i])
	return Change{ProductID: productID, Position: i, Before: &before, After: &after}
}

// AssignCardItemID records the server-side id of a product's line
func (c *Cart) AssignCardItemID(productID, cardItemID int64) bool {
	i := c.indexOf(productID)
	if i < 0 || cardItemID == 0 {
		return false
	}
	c.lines[i].CardItemID = cardItemID
	return true
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.lines = nil
	c.total = 0
}

// Revert applies the inverse of a change's quantity delta to the current line,
// so units added by other mutations since the change survive. A line reaching
// zero is removed; a missing line is restored at its old position.
func (c *Cart) Revert(ch Change) {
	delta := ch.quantityAfter() - ch.quantityBefore()
	if delta == 0 {
		return
	}

	i := c.indexOf(ch.ProductID)
	current := 0
	if i >= 0 {
		current = c.lines[i].Quantity
	}
	quantity := current - delta

	switch {
	case quantity <= 0 && i >= 0:
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	case quantity <= 0:
	case i >= 0:
		c.lines[i].Quantity = quantity
		if c.lines[i].CardItemID == 0 && ch.Before != nil {
			c.lines[i].CardItemID = ch.Before.CardItemID
		}
	default:
		restored := ch.Before
		if restored == nil {
			restored = ch.After
		}
		line := cloneLine(*restored)
		line.Quantity = quantity

		pos := ch.Position
		if pos < 0 || pos > len(c.lines) {
			pos = len(c.lines)
		}
		c.lines = append(c.lines, Line{})
		copy(c.lines[pos+1:], c.lines[pos:])
		c.lines[pos] = line
	}

	c.recompute()
}

// Unaccepted narrows a quantity increase to the units beyond the first
// accepted ones, for rolling back a partially applied increment.
func (c Change) Unaccepted(accepted int) Change {
	if c.Before == nil || accepted <= 0 {
		return c
	}
	before := cloneLine(*c.Before)
	before.Quantity += accepted
	c.Before = &before
	return c
}

func (c Change) quantityBefore() int {
	if c.Before == nil {
		return 0
	}
	return c.Before.Quantity
}

func (c Change) quantityAfter() int {
	if c.After == nil {
		return 0
	}
	return c.After.Quantity
}

func (c *Cart) indexOf(productID int64) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) recompute() {
	var total catalog.Money
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	c.total = total
}

func cloneLine(l Line) Line {
	if l.NameTranslations != nil {
		l.NameTranslations = append(catalog.Names(nil), l.NameTranslations...)
	}
	return l
}

func sameLine(a, b Line) bool {
	return a.ProductID == b.ProductID && a.Quantity == b.Quantity && a.UnitPrice == b.UnitPrice && a.CardItemID == b.CardItemID
}
