package storefront

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/easyway-storefront/internal/api"
)

// CheckoutOptions controls what happens after the order is placed
type CheckoutOptions struct {
	CreatePayment bool `json:"createPayment"`
}

// CheckoutResult describes a placed order
type CheckoutResult struct {
	Order        *api.SalesOrder `json:"order,omitempty"`
	Payment      *api.Payment    `json:"payment,omitempty"`
	PaymentError string          `json:"paymentError,omitempty"`
}

// Checkout places a pending online order for the backend cart and clears the
// local cart once the backend accepts it.
func (d *Device) Checkout(ctx context.Context, opts CheckoutOptions) (*CheckoutResult, error) {
	u := d.store.User()
	if u == nil {
		return nil, ErrLoginRequired
	}
	if len(d.store.CartItems()) == 0 {
		return nil, ErrEmptyCart
	}

	d.ensureFresh(ctx)
	items, err := d.api.MyCardItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for checkout: %w", err)
	}

	ids := make([]int64, 0, len(items))
	quantity := 0
	for _, item := range items {
		if item.CardItemID == 0 {
			continue
		}
		ids = append(ids, item.CardItemID)
		if item.Quantity > 0 {
			quantity += item.Quantity
		} else {
			quantity++
		}
	}
	if len(ids) == 0 {
		return nil, ErrCartNotSynced
	}

	order, err := d.api.CreateSalesOrder(ctx, api.NewOnlineOrder(u.UserID, ids, quantity))
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	d.store.ClearCart(ctx)
	result := &CheckoutResult{Order: order}

	log := d.log.WithFields(logrus.Fields{"user_id": u.UserID, "items": len(ids)})
	if order != nil {
		log = log.WithField("order_id", order.OrderID())
	}
	log.Info("Order placed")

	if !opts.CreatePayment {
		return result, nil
	}
	if order == nil || order.OrderID() == 0 {
		result.PaymentError = "order id not returned by backend"
		return result, nil
	}

	payment, err := d.api.CreatePayment(ctx, order.OrderID())
	if err != nil {
		// the order stands; payment can be retried separately
		log.WithError(err).Warn("Payment creation failed")
		result.PaymentError = err.Error()
		return result, nil
	}
	result.Payment = payment
	return result, nil
}

// CreatePayment starts payment for an existing order
func (d *Device) CreatePayment(ctx context.Context, orderID int64) (*api.Payment, error) {
	if err := d.requireLogin(); err != nil {
		return nil, err
	}

	d.ensureFresh(ctx)
	payment, err := d.api.CreatePayment(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment for order %d: %w", orderID, err)
	}
	return payment, nil
}
