package storefront

import (
	"context"
	"fmt"

	"github.com/your-org/easyway-storefront/internal/domain/favorite"
)

// FavoriteMutation reports a favorite change and how it was reconciled
type FavoriteMutation struct {
	Outcome    Outcome         `json:"outcome"`
	IsFavorite bool            `json:"isFavorite"`
	Change     favorite.Change `json:"change"`
}

// Favorites returns the local favorites
func (d *Device) Favorites() []favorite.Product {
	return d.store.Favorites()
}

// ToggleFavorite flips a product's favorite state
func (d *Device) ToggleFavorite(ctx context.Context, productID int64) (FavoriteMutation, error) {
	if d.store.IsFavorite(productID) {
		return d.RemoveFavorite(ctx, productID)
	}
	return d.AddFavorite(ctx, productID)
}

// AddFavorite marks a product as favorite locally, then on the backend when signed in
func (d *Device) AddFavorite(ctx context.Context, productID int64) (FavoriteMutation, error) {
	if d.store.IsFavorite(productID) {
		return FavoriteMutation{Outcome: OutcomeUnchanged, IsFavorite: true, Change: favorite.Change{ProductID: productID, Position: -1}}, nil
	}

	p, err := d.resolveProduct(ctx, productID)
	if err != nil {
		return FavoriteMutation{}, err
	}

	change := d.store.AddProductToFavorites(ctx, *p)
	if !d.store.IsAuthenticated() {
		return FavoriteMutation{Outcome: OutcomeLocalOnly, IsFavorite: true, Change: change}, nil
	}

	d.ensureFresh(ctx)
	if err := d.api.AddFavourite(ctx, productID); err != nil {
		d.store.RevertFavorite(ctx, change)
		d.log.WithError(err).WithField("product_id", productID).Warn("Favorite add rolled back")
		return FavoriteMutation{Outcome: OutcomeRolledBack, IsFavorite: false, Change: change}, fmt.Errorf("failed to add product %d to favorites: %w", productID, err)
	}

	return FavoriteMutation{Outcome: OutcomeConfirmed, IsFavorite: true, Change: change}, nil
}

// RemoveFavorite unmarks a product locally, then on the backend when signed in
func (d *Device) RemoveFavorite(ctx context.Context, productID int64) (FavoriteMutation, error) {
	change := d.store.RemoveFromFavorites(ctx, productID)
	if !change.Changed() {
		return FavoriteMutation{Outcome: OutcomeUnchanged, Change: change}, nil
	}
	if !d.store.IsAuthenticated() {
		return FavoriteMutation{Outcome: OutcomeLocalOnly, Change: change}, nil
	}

	d.ensureFresh(ctx)
	if err := d.api.RemoveFavourite(ctx, productID); err != nil {
		d.store.RevertFavorite(ctx, change)
		d.log.WithError(err).WithField("product_id", productID).Warn("Favorite removal rolled back")
		return FavoriteMutation{Outcome: OutcomeRolledBack, IsFavorite: true, Change: change}, fmt.Errorf("failed to remove product %d from favorites: %w", productID, err)
	}

	return FavoriteMutation{Outcome: OutcomeConfirmed, Change: change}, nil
}

// SyncFavorites replaces the local favorites with the backend's
func (d *Device) SyncFavorites(ctx context.Context) ([]favorite.Product, error) {
	if err := d.requireLogin(); err != nil {
		return nil, err
	}

	d.ensureFresh(ctx)
	items, err := d.api.MyFavourites(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	favorites := make([]favorite.Product, 0, len(items))
	for _, item := range items {
		favorites = append(favorites, item.Favorite())
	}
	d.store.SetFavorites(ctx, favorites)
	return d.store.Favorites(), nil
}
