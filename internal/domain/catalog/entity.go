// internal/domain/catalog/entity.go
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Locale selects which translation is shown; it never changes data shape
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleTamil   Locale = "ta"
)

// DefaultLocale is used when nothing has been chosen yet
const DefaultLocale = LocaleEnglish

// ErrUnsupportedLocale is returned for codes other than en and ta
var ErrUnsupportedLocale = errors.New("unsupported language")

// ParseLocale validates a locale code
func ParseLocale(code string) (Locale, error) {
	switch Locale(code) {
	case LocaleEnglish, LocaleTamil:
		return Locale(code), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnsupportedLocale, code)
}

// Money is an amount in paise. On the wire it is a rupee number.
type Money int64

// Rupees builds a Money value from a rupee amount
func Rupees(amount float64) Money {
	return Money(math.Round(amount * 100))
}

// Float returns the amount in rupees
func (m Money) Float() float64 {
	return float64(m) / 100
}

// Times multiplies a unit price by a quantity
func (m Money) Times(quantity int) Money {
	return m * Money(quantity)
}

// String formats the amount with two decimals
func (m Money) String() string {
	return strconv.FormatFloat(m.Float(), 'f', 2, 64)
}

// MarshalJSON writes the amount as a rupee number
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Float(), 'f', -1, 64)), nil
}

// UnmarshalJSON accepts rupee numbers and null
func (m *Money) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = 0
		return nil
	}
	var amount float64
	if err := json.Unmarshal(data, &amount); err != nil {
		return fmt.Errorf("invalid money amount %s: %w", data, err)
	}
	*m = Rupees(amount)
	return nil
}

// NameTranslation is a product name in one language
type NameTranslation struct {
	Language string `json:"language"`
	Name     string `json:"name"`
}

// Names is the per-locale name set carried by products, cart lines and favorites
type Names []NameTranslation

// fallbackName is shown when a product carries no translations at all
const fallbackName = "Product"

// DisplayName picks the name for locale, then the first translation, then a generic label
func (n Names) DisplayName(locale Locale) string {
	for _, t := range n {
		if t.Language == string(locale) && t.Name != "" {
			return t.Name
		}
	}
	if len(n) > 0 && n[0].Name != "" {
		return n[0].Name
	}
	return fallbackName
}

// Product is a catalog entry as returned by the stock listing endpoints
type Product struct {
	ProductID          int64    `json:"productId"`
	NameTranslations   Names    `json:"nameTranslations"`
	Description        string   `json:"description"`
	MeasurementValue   float64  `json:"measurementValue"`
	MeasurementUnit    string   `json:"measurementUnit"`
	MeasurementPrice   Money    `json:"measurementSellingPrice"`
	HeroImageSignedURL string   `json:"heroImageSignedUrl"`
	IsFavourite        bool     `json:"isFavourite"`
	Images             []string `json:"images,omitempty"`
}

// DisplayName returns the product name for locale
func (p *Product) DisplayName(locale Locale) string {
	return p.NameTranslations.DisplayName(locale)
}

// Query filters the paginated home-products listing
type Query struct {
	ProductName   string `form:"productName"`
	CategoryID    int64  `form:"categoryId"`
	SubCategoryID int64  `form:"subCategoryId"`
	PageNumber    int    `form:"pageNumber"`
	PageSize      int    `form:"pageSize"`
}

// Page is one page of the listing
type Page struct {
	Items       []Product `json:"items"`
	CurrentPage int       `json:"currentPage"`
	TotalPages  int       `json:"totalPages"`
	TotalItems  int       `json:"totalItems,omitempty"`
}

// HasMore reports whether another page follows this one (pages are zero based)
func (p *Page) HasMore() bool {
	return p.CurrentPage < p.TotalPages-1
}
