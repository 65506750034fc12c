package storefront

import (
	"context"
	"fmt"

	"github.com/your-org/easyway-storefront/internal/domain/catalog"
)

// BrowseProducts loads a page of the listing. Page zero replaces the product
// cache and later pages extend it. Failures are returned, never papered over.
func (d *Device) BrowseProducts(ctx context.Context, q catalog.Query) (*catalog.Page, error) {
	if q.PageNumber < 0 {
		q.PageNumber = 0
	}
	if q.PageSize <= 0 {
		q.PageSize = d.svc.config.API.PageSize
	}

	d.store.SetLoading(true)
	defer d.store.SetLoading(false)

	page, err := d.api.HomeProducts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	d.markFavorites(page.Items)
	if q.PageNumber == 0 {
		d.store.SetProducts(page.Items)
	} else {
		d.store.AppendProducts(page.Items)
	}
	return page, nil
}

// ProductDetail loads one product
func (d *Device) ProductDetail(ctx context.Context, productID int64) (*catalog.Product, error) {
	p, err := d.api.ProductInfo(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", productID, err)
	}
	p.IsFavourite = p.IsFavourite || d.store.IsFavorite(productID)
	return p, nil
}

func (d *Device) markFavorites(products []catalog.Product) {
	for i := range products {
		if d.store.IsFavorite(products[i].ProductID) {
			products[i].IsFavourite = true
		}
	}
}
