package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/your-org/easyway-storefront/internal/domain/cart"
	"github.com/your-org/easyway-storefront/internal/domain/catalog"
)

// CardItem is a server-side cart line
type CardItem struct {
	CardItemID         int64         `json:"cardItemId"`
	ProductID          int64         `json:"productId"`
	Quantity           int           `json:"quantity"`
	NameTranslations   catalog.Names `json:"productNameResponseDtos"`
	HeroImageSignedURL string        `json:"heroImageSignedUrl"`
	MeasurementPrice   catalog.Money `json:"measurementSellingPrice"`
}

// Line converts the server line to a local cart line
func (c CardItem) Line() cart.Line {
	quantity := c.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	return cart.Line{
		CardItemID:         c.CardItemID,
		ProductID:          c.ProductID,
		NameTranslations:   c.NameTranslations,
		HeroImageSignedURL: c.HeroImageSignedURL,
		UnitPrice:          c.MeasurementPrice,
		Quantity:           quantity,
	}
}

// AddCardItem adds one unit of a product to the server cart. The returned item
// is nil when the backend does not echo it.
func (s *Session) AddCardItem(ctx context.Context, productID int64) (*CardItem, error) {
	var results []CardItem
	err := s.do(ctx, http.MethodPost, fmt.Sprintf("/v1/card-items/add/%d", productID), nil, nil, &results)
	return firstOrNil(results, err)
}

// RemoveCardItem removes a product from the server cart
func (s *Session) RemoveCardItem(ctx context.Context, productID int64) error {
	return s.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/card-items/remove/%d", productID), nil, nil, nil)
}

// MyCardItems lists the server cart
func (s *Session) MyCardItems(ctx context.Context) ([]CardItem, error) {
	var items []CardItem
	err := s.do(ctx, http.MethodGet, "/v1/card-items/my", nil, nil, &items)
	if errors.Is(err, ErrEmptyResults) {
		return []CardItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}
