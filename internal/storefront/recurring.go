package storefront

import (
	"context"
	"fmt"
	"strings"

	"github.com/your-org/easyway-storefront/internal/api"
	"github.com/your-org/easyway-storefront/internal/validation"
)

// CreateRecurringOrder saves a recurring order on the backend
func (d *Device) CreateRecurringOrder(ctx context.Context, form validation.RecurringOrderForm) (*api.RecurringOrder, error) {
	form.Name = strings.TrimSpace(form.Name)
	if err := d.svc.validator.Struct(form); err != nil {
		return nil, err
	}
	if err := d.requireLogin(); err != nil {
		return nil, err
	}

	d.ensureFresh(ctx)
	order, err := d.api.CreateRecurringOrder(ctx, api.RecurringOrderRequest{Name: form.Name, Note: form.Note})
	if err != nil {
		return nil, fmt.Errorf("failed to create recurring order: %w", err)
	}
	return order, nil
}

// AddRecurringOrderItem adds a product to a recurring order
func (d *Device) AddRecurringOrderItem(ctx context.Context, recurringOrderID, productID int64) error {
	if err := d.requireLogin(); err != nil {
		return err
	}

	d.ensureFresh(ctx)
	if err := d.api.AddRecurringOrderItem(ctx, recurringOrderID, productID); err != nil {
		return fmt.Errorf("failed to add product %d to recurring order %d: %w", productID, recurringOrderID, err)
	}
	return nil
}

// RemoveRecurringOrderItem removes a product from a recurring order
func (d *Device) RemoveRecurringOrderItem(ctx context.Context, recurringOrderID, productID int64) error {
	if err := d.requireLogin(); err != nil {
		return err
	}

	d.ensureFresh(ctx)
	if err := d.api.RemoveRecurringOrderItem(ctx, recurringOrderID, productID); err != nil {
		return fmt.Errorf("failed to remove product %d from recurring order %d: %w", productID, recurringOrderID, err)
	}
	return nil
}

// RecurringOrders lists the user's recurring orders
func (d *Device) RecurringOrders(ctx context.Context) ([]api.RecurringOrder, error) {
	if err := d.requireLogin(); err != nil {
		return nil, err
	}

	d.ensureFresh(ctx)
	orders, err := d.api.MyRecurringOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring orders: %w", err)
	}
	return orders, nil
}
