package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	transactiondomain "github.com/smallbiznis/saletrack/internal/transaction/domain"
)

// RecentLimit bounds the recent activity lists on the dashboard.
const RecentLimit = 5

type Kind string

const (
	KindSales     Kind = "sales"
	KindPurchases Kind = "purchases"
)

type Dashboard struct {
	TotalSales      decimal.Decimal              `json:"total_sales"`
	TotalPurchases  decimal.Decimal              `json:"total_purchases"`
	TotalInventory  decimal.Decimal              `json:"total_inventory"`
	Profit          decimal.Decimal              `json:"profit"`
	RecentSales     []transactiondomain.Sale     `json:"recent_sales"`
	RecentPurchases []transactiondomain.Purchase `json:"recent_purchases"`
}

type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	// CSV renders the sales or purchase log as a CSV document.
	CSV(ctx context.Context, kind Kind) ([]byte, error)
}

var ErrInvalidReportType = errors.New("invalid_report_type")

// CSVHeader is the column set shared by sales and purchase reports.
var CSVHeader = []string{"Date", "Product", "HSN", "Quantity", "Price", "Subtotal", "CGST", "SGST", "IGST", "Total"}
