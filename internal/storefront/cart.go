package storefront

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/easyway-storefront/internal/domain/cart"
	"github.com/your-org/easyway-storefront/internal/domain/catalog"
)

// CartView is the cart as returned to clients
type CartView struct {
	Items         []cart.Line   `json:"items"`
	Total         catalog.Money `json:"total"`
	TotalQuantity int           `json:"totalQuantity"`
}

// CartMutation reports a cart change and how it was reconciled
type CartMutation struct {
	Outcome Outcome     `json:"outcome"`
	Change  cart.Change `json:"change"`
}

// Cart returns the current cart
func (d *Device) Cart() CartView {
	items := d.store.CartItems()
	quantity := 0
	for _, l := range items {
		quantity += l.Quantity
	}
	return CartView{Items: items, Total: d.store.CartTotal(), TotalQuantity: quantity}
}

// AddToCart adds one unit locally, then on the backend when signed in
func (d *Device) AddToCart(ctx context.Context, productID int64) (CartMutation, error) {
	line, ok := d.store.CartLine(productID)
	if !ok {
		p, err := d.resolveProduct(ctx, productID)
		if err != nil {
			return CartMutation{}, err
		}
		line = cart.LineFromProduct(*p)
	}

	change := d.store.AddToCart(ctx, line)
	if !d.store.IsAuthenticated() {
		return CartMutation{Outcome: OutcomeLocalOnly, Change: change}, nil
	}

	d.ensureFresh(ctx)
	item, err := d.api.AddCardItem(ctx, productID)
	if err != nil {
		d.store.RevertCart(ctx, change)
		d.log.WithError(err).WithField("product_id", productID).Warn("Cart add rolled back")
		return CartMutation{Outcome: OutcomeRolledBack, Change: change}, fmt.Errorf("failed to add product %d to cart: %w", productID, err)
	}
	if item != nil {
		d.store.AssignCardItemID(ctx, productID, item.CardItemID)
	}

	return CartMutation{Outcome: OutcomeConfirmed, Change: change}, nil
}

// ChangeQuantity sets a line's quantity. Increments are sent as one backend add
// per unit; decrements have no backend endpoint and stay local. Zero or less
// removes the line.
func (d *Device) ChangeQuantity(ctx context.Context, productID int64, quantity int) (CartMutation, error) {
	if quantity <= 0 {
		return d.RemoveFromCart(ctx, productID)
	}

	current, ok := d.store.CartLine(productID)
	if !ok {
		return CartMutation{Outcome: OutcomeUnchanged, Change: cart.Change{ProductID: productID, Position: -1}}, nil
	}

	change := d.store.UpdateCartQuantity(ctx, productID, quantity)
	if !change.Changed() {
		return CartMutation{Outcome: OutcomeUnchanged, Change: change}, nil
	}
	if quantity < current.Quantity || !d.store.IsAuthenticated() {
		return CartMutation{Outcome: OutcomeLocalOnly, Change: change}, nil
	}

	d.ensureFresh(ctx)
	for added := 0; added < quantity-current.Quantity; added++ {
		item, err := d.api.AddCardItem(ctx, productID)
		if err != nil {
			// keep the units the backend did accept
			d.store.RevertCart(ctx, change.Unaccepted(added))
			d.log.WithError(err).WithFields(logrus.Fields{
				"product_id": productID,
				"accepted":   added,
			}).Warn("Cart increment rolled back")
			return CartMutation{Outcome: OutcomeRolledBack, Change: change}, fmt.Errorf("failed to increase product %d quantity: %w", productID, err)
		}
		if item != nil {
			d.store.AssignCardItemID(ctx, productID, item.CardItemID)
		}
	}

	return CartMutation{Outcome: OutcomeConfirmed, Change: change}, nil
}

// RemoveFromCart drops a line locally, then on the backend when signed in
func (d *Device) RemoveFromCart(ctx context.Context, productID int64) (CartMutation, error) {
	change := d.store.RemoveFromCart(ctx, productID)
	if !change.Changed() {
		return CartMutation{Outcome: OutcomeUnchanged, Change: change}, nil
	}
	if !d.store.IsAuthenticated() {
		return CartMutation{Outcome: OutcomeLocalOnly, Change: change}, nil
	}

	d.ensureFresh(ctx)
	if err := d.api.RemoveCardItem(ctx, productID); err != nil {
		d.store.RevertCart(ctx, change)
		d.log.WithError(err).WithField("product_id", productID).Warn("Cart removal rolled back")
		return CartMutation{Outcome: OutcomeRolledBack, Change: change}, fmt.Errorf("failed to remove product %d from cart: %w", productID, err)
	}

	return CartMutation{Outcome: OutcomeConfirmed, Change: change}, nil
}

// ClearCart empties the local cart
func (d *Device) ClearCart(ctx context.Context) {
	d.store.ClearCart(ctx)
}

// SyncCart replaces the local cart with the backend's
func (d *Device) SyncCart(ctx context.Context) (CartView, error) {
	if err := d.requireLogin(); err != nil {
		return CartView{}, err
	}

	d.ensureFresh(ctx)
	items, err := d.api.MyCardItems(ctx)
	if err != nil {
		return CartView{}, fmt.Errorf("failed to load cart: %w", err)
	}

	lines := make([]cart.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, item.Line())
	}
	d.store.SetCartItems(ctx, lines)
	return d.Cart(), nil
}
