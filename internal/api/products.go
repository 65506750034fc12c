package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/your-org/easyway-storefront/internal/domain/catalog"
)

// HomeProducts fetches one page of the product listing
func (s *Session) HomeProducts(ctx context.Context, q catalog.Query) (*catalog.Page, error) {
	params := url.Values{}
	params.Set("pageNumber", strconv.Itoa(q.PageNumber))
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	if q.ProductName != "" {
		params.Set("productName", q.ProductName)
	}
	if q.CategoryID > 0 {
		params.Set("categoryId", strconv.FormatInt(q.CategoryID, 10))
	}
	if q.SubCategoryID > 0 {
		params.Set("subCategoryId", strconv.FormatInt(q.SubCategoryID, 10))
	}

	var results []catalog.Page
	if err := s.do(ctx, http.MethodGet, "/v1/stocks/home-products", params, nil, &results); err != nil {
		return nil, err
	}
	page, err := first(results)
	if err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []catalog.Product{}
	}
	return &page, nil
}

// ProductInfo fetches one product's details
func (s *Session) ProductInfo(ctx context.Context, productID int64) (*catalog.Product, error) {
	var results []catalog.Product
	path := fmt.Sprintf("/v1/stocks/home-product-info/%d", productID)
	if err := s.do(ctx, http.MethodGet, path, nil, nil, &results); err != nil {
		return nil, err
	}
	product, err := first(results)
	if err != nil {
		return nil, err
	}
	return &product, nil
}
