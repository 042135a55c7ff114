package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"github.com/shopspring/decimal"
	productdomain "github.com/smallbiznis/saletrack/internal/product/domain"
	"github.com/smallbiznis/saletrack/internal/report/domain"
	transactiondomain "github.com/smallbiznis/saletrack/internal/transaction/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02 15:04:05"

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Products     productdomain.Repository
	Transactions transactiondomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	products     productdomain.Repository
	transactions transactiondomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("report.service"),
		products:     p.Products,
		transactions: p.Transactions,
	}
}

func (s *Service) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	sales, err := s.transactions.ListSales(ctx, s.db)
	if err != nil {
		return nil, err
	}
	purchases, err := s.transactions.ListPurchases(ctx, s.db)
	if err != nil {
		return nil, err
	}
	products, err := s.products.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	d := &domain.Dashboard{
		TotalSales:      decimal.Zero,
		TotalPurchases:  decimal.Zero,
		TotalInventory:  decimal.Zero,
		RecentSales:     make([]transactiondomain.Sale, 0, domain.RecentLimit),
		RecentPurchases: make([]transactiondomain.Purchase, 0, domain.RecentLimit),
	}
	for _, sale := range sales {
		d.TotalSales = d.TotalSales.Add(sale.Total)
	}
	for _, purchase := range purchases {
		d.TotalPurchases = d.TotalPurchases.Add(purchase.Total)
	}
	for _, p := range products {
		d.TotalInventory = d.TotalInventory.Add(p.StockValue())
	}
	d.Profit = d.TotalSales.Sub(d.TotalPurchases)

	// Logs are ordered oldest first.
	for i := len(sales) - 1; i >= 0 && len(d.RecentSales) < domain.RecentLimit; i-- {
		d.RecentSales = append(d.RecentSales, sales[i])
	}
	for i := len(purchases) - 1; i >= 0 && len(d.RecentPurchases) < domain.RecentLimit; i-- {
		d.RecentPurchases = append(d.RecentPurchases, purchases[i])
	}
	return d, nil
}

func (s *Service) CSV(ctx context.Context, kind domain.Kind) ([]byte, error) {
	var rows [][]string
	switch kind {
	case domain.KindSales:
		sales, err := s.transactions.ListSales(ctx, s.db)
		if err != nil {
			return nil, err
		}
		for _, r := range sales {
			rows = append(rows, csvRow(r.CreatedAt.Format(dateLayout), r.ProductName, r.HSNCode, r.Quantity,
				r.UnitPrice, r.Subtotal, r.CGST, r.SGST, r.IGST, r.Total))
		}
	case domain.KindPurchases:
		purchases, err := s.transactions.ListPurchases(ctx, s.db)
		if err != nil {
			return nil, err
		}
		for _, r := range purchases {
			rows = append(rows, csvRow(r.CreatedAt.Format(dateLayout), r.ProductName, r.HSNCode, r.Quantity,
				r.UnitPrice, r.Subtotal, r.CGST, r.SGST, r.IGST, r.Total))
		}
	default:
		return nil, domain.ErrInvalidReportType
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(domain.CSVHeader); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}

	s.log.Debug("report generated", zap.String("type", string(kind)), zap.Int("rows", len(rows)))
	return buf.Bytes(), nil
}

func csvRow(date, product string, hsn *string, qty int64, amounts ...decimal.Decimal) []string {
	row := []string{date, product, "", strconv.FormatInt(qty, 10)}
	if hsn != nil {
		row[2] = *hsn
	}
	for _, a := range amounts {
		row = append(row, a.StringFixed(2))
	}
	return row
}
