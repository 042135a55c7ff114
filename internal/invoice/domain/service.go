package domain

import (
	"context"
	"errors"

	transactiondomain "github.com/smallbiznis/saletrack/internal/transaction/domain"
)

type AssembleRequest struct {
	Sales         []transactiondomain.Sale
	CustomerID    string
	PaymentMethod string
}

type SendRequest struct {
	Number string `json:"-"`
	Email  string `json:"email"`
}

type Service interface {
	Assemble(ctx context.Context, req AssembleRequest) (*Bill, error)
	Get(ctx context.Context, number string) (*Bill, error)
	List(ctx context.Context) ([]Bill, error)
	// ForSale returns the bill that already covers saleID, assembling
	// a single-line bill when none exists.
	ForSale(ctx context.Context, saleID string) (*Bill, error)
	RenderHTML(ctx context.Context, bill *Bill) ([]byte, error)
	RenderPDF(ctx context.Context, bill *Bill) ([]byte, error)
	Send(ctx context.Context, req SendRequest) error
}

var (
	ErrEmptyBill            = errors.New("empty_bill")
	ErrInvalidPaymentMethod = errors.New("invalid_payment_method")
	ErrInvalidCustomer      = errors.New("invalid_customer")
	ErrInvalidEmail         = errors.New("invalid_email")
	ErrBillNotFound         = errors.New("bill_not_found")
	ErrCustomerNotFound     = errors.New("customer_not_found")
	ErrEmailNotConfigured   = errors.New("email_not_configured")
)

var paymentMethods = map[string]struct{}{
	"cash":          {},
	"card":          {},
	"upi":           {},
	"bank_transfer": {},
	"credit":        {},
}

// IsPaymentMethod reports whether method is accepted on bills.
func IsPaymentMethod(method string) bool {
	_, ok := paymentMethods[method]
	return ok
}
