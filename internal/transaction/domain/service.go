package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Item is one product line of a sale or purchase. A nil UnitPrice
// falls back to the product's catalog price.
type Item struct {
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

type RecordSaleRequest struct {
	Item
	CustomerID string `json:"customer_id"`
}

type RecordSalesRequest struct {
	Items      []Item `json:"items"`
	CustomerID string `json:"customer_id"`
}

type RecordPurchaseRequest struct {
	Item
}

type Service interface {
	RecordSale(ctx context.Context, req RecordSaleRequest) (*Sale, error)
	RecordSales(ctx context.Context, req RecordSalesRequest) ([]Sale, error)
	RecordPurchase(ctx context.Context, req RecordPurchaseRequest) (*Purchase, error)
	GetSale(ctx context.Context, id string) (*Sale, error)
	ListSales(ctx context.Context) ([]Sale, error)
	ListPurchases(ctx context.Context) ([]Purchase, error)
}

var (
	ErrInvalidQuantity   = errors.New("invalid_quantity")
	ErrInvalidPrice      = errors.New("invalid_price")
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidProduct    = errors.New("invalid_product")
	ErrInvalidCustomer   = errors.New("invalid_customer")
	ErrEmptyItems        = errors.New("empty_items")
	ErrNotFound          = errors.New("not_found")
	ErrProductNotFound   = errors.New("product_not_found")
	ErrCustomerNotFound  = errors.New("customer_not_found")
	ErrInsufficientStock = errors.New("insufficient_stock")
)
