package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/your-org/easyway-storefront/internal/domain/catalog"
)

// Sales order constants for storefront checkouts
const (
	OrderTypeOnline     = "ONLINE"
	OrderStatusPending  = "ORDER_PENDING"
	unassignedPersonnel = 0
)

// SalesOrderRequest creates an order from server-side cart items
type SalesOrderRequest struct {
	Type             string  `json:"type"`
	Status           string  `json:"status"`
	CardItemIDs      []int64 `json:"cardItemIds"`
	TotalQuantity    int     `json:"totalQuantity"`
	TotalWeight      float64 `json:"totalWeight"`
	CustomerID       int64   `json:"customerId"`
	SalesPersonID    int64   `json:"salesPersonId"`
	DeliveryPersonID int64   `json:"deliveryPersonId"`
}

// NewOnlineOrder builds the request for a pending online order
func NewOnlineOrder(customerID int64, cardItemIDs []int64, totalQuantity int) SalesOrderRequest {
	if cardItemIDs == nil {
		cardItemIDs = []int64{}
	}
	return SalesOrderRequest{
		Type:             OrderTypeOnline,
		Status:           OrderStatusPending,
		CardItemIDs:      cardItemIDs,
		TotalQuantity:    totalQuantity,
		CustomerID:       customerID,
		SalesPersonID:    unassignedPersonnel,
		DeliveryPersonID: unassignedPersonnel,
	}
}

// SalesOrder is the backend's view of a created order
type SalesOrder struct {
	ID            int64         `json:"id"`
	SalesOrderID  int64         `json:"salesOrderId"`
	Status        string        `json:"status"`
	TotalQuantity int           `json:"totalQuantity"`
	TotalAmount   catalog.Money `json:"totalAmount"`
}

// OrderID is whichever id the backend populated
func (o *SalesOrder) OrderID() int64 {
	if o.SalesOrderID != 0 {
		return o.SalesOrderID
	}
	return o.ID
}

type paymentRequest struct {
	OrderID int64 `json:"orderId"`
}

// Payment is the backend's view of a created payment
type Payment struct {
	ID      int64         `json:"id"`
	OrderID int64         `json:"orderId"`
	Status  string        `json:"status"`
	Amount  catalog.Money `json:"amount"`
}

// RecurringOrderRequest creates a named recurring order
type RecurringOrderRequest struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

// RecurringOrderItem is a product on a recurring order
type RecurringOrderItem struct {
	ProductID          int64         `json:"productId"`
	NameTranslations   catalog.Names `json:"productNameResponseDtos"`
	HeroImageSignedURL string        `json:"heroImageSignedUrl"`
}

// RecurringOrder is a saved order template
type RecurringOrder struct {
	ID    int64                `json:"id"`
	Name  string               `json:"name"`
	Note  string               `json:"note"`
	Items []RecurringOrderItem `json:"items"`
}

// CreateSalesOrder places an order. The returned order is nil when the backend
// does not echo it.
func (s *Session) CreateSalesOrder(ctx context.Context, req SalesOrderRequest) (*SalesOrder, error) {
	var results []SalesOrder
	err := s.do(ctx, http.MethodPost, "/v1/sales-orders/create", nil, req, &results)
	return firstOrNil(results, err)
}

// CreatePayment starts payment for an order
func (s *Session) CreatePayment(ctx context.Context, orderID int64) (*Payment, error) {
	var results []Payment
	err := s.do(ctx, http.MethodPost, "/v1/payments/create", nil, paymentRequest{OrderID: orderID}, &results)
	return firstOrNil(results, err)
}

// CreateRecurringOrder saves a new recurring order
func (s *Session) CreateRecurringOrder(ctx context.Context, req RecurringOrderRequest) (*RecurringOrder, error) {
	var results []RecurringOrder
	err := s.do(ctx, http.MethodPost, "/v1/recurring-orders/create", nil, req, &results)
	return firstOrNil(results, err)
}

// AddRecurringOrderItem adds a product to a recurring order
func (s *Session) AddRecurringOrderItem(ctx context.Context, recurringOrderID, productID int64) error {
	path := fmt.Sprintf("/v1/recurring-orders/%d/add-item/%d", recurringOrderID, productID)
	return s.do(ctx, http.MethodPost, path, nil, nil, nil)
}

// RemoveRecurringOrderItem removes a product from a recurring order
func (s *Session) RemoveRecurringOrderItem(ctx context.Context, recurringOrderID, productID int64) error {
	path := fmt.Sprintf("/v1/recurring-orders/%d/remove-item/%d", recurringOrderID, productID)
	return s.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// MyRecurringOrders lists the user's recurring orders
func (s *Session) MyRecurringOrders(ctx context.Context) ([]RecurringOrder, error) {
	var orders []RecurringOrder
	err := s.do(ctx, http.MethodGet, "/v1/recurring-orders/my", nil, nil, &orders)
	if errors.Is(err, ErrEmptyResults) {
		return []RecurringOrder{}, nil
	}
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func firstOrNil[T any](results []T, err error) (*T, error) {
	if errors.Is(err, ErrEmptyResults) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}
