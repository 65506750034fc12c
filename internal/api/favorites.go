package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/your-org/easyway-storefront/internal/domain/catalog"
	"github.com/your-org/easyway-storefront/internal/domain/favorite"
)

// FavouriteItem is one entry of the favourites listing
type FavouriteItem struct {
	ID                 int64         `json:"id"`
	NameTranslations   catalog.Names `json:"productNameResponseDtos"`
	HeroImageSignedURL string        `json:"heroImageSignedUrl"`
}

// Favorite converts the listing entry to the local favorite shape
func (f FavouriteItem) Favorite() favorite.Product {
	return favorite.Product{
		ProductID:          f.ID,
		NameTranslations:   f.NameTranslations,
		HeroImageSignedURL: f.HeroImageSignedURL,
		IsFavourite:        true,
	}
}

// AddFavourite marks a product as favourite
func (s *Session) AddFavourite(ctx context.Context, productID int64) error {
	return s.do(ctx, http.MethodPost, fmt.Sprintf("/v1/favourites/%d", productID), nil, nil, nil)
}

// RemoveFavourite unmarks a product
func (s *Session) RemoveFavourite(ctx context.Context, productID int64) error {
	return s.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/favourites/%d", productID), nil, nil, nil)
}

// MyFavourites lists the signed-in user's favourites
func (s *Session) MyFavourites(ctx context.Context) ([]FavouriteItem, error) {
	var items []FavouriteItem
	err := s.do(ctx, http.MethodGet, "/v1/favourites/my", nil, nil, &items)
	if errors.Is(err, ErrEmptyResults) {
		return []FavouriteItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}
