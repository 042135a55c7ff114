package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/saletrack/internal/clock"
	"github.com/smallbiznis/saletrack/internal/config"
	customerdomain "github.com/smallbiznis/saletrack/internal/customer/domain"
	"github.com/smallbiznis/saletrack/internal/observability/metrics"
	productdomain "github.com/smallbiznis/saletrack/internal/product/domain"
	taxdomain "github.com/smallbiznis/saletrack/internal/tax/domain"
	"github.com/smallbiznis/saletrack/internal/transaction/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Config    config.Config
	Clock     clock.Clock
	GenID     *snowflake.Node
	Repo      domain.Repository
	Products  productdomain.Repository
	Customers customerdomain.Repository
	Tax       taxdomain.Engine
	Metrics   *metrics.Metrics `optional:"true"`
}

// Service is the only writer of sales and purchases and the only caller
// of stock adjustments. Writes are serialized by mu and each call runs
// in a single database transaction.
type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	genID     *snowflake.Node
	repo      domain.Repository
	products  productdomain.Repository
	customers customerdomain.Repository
	tax       taxdomain.Engine
	metrics   *metrics.Metrics

	allowNegativeStock bool

	mu sync.Mutex
}

func New(p Params) domain.Service {
	return &Service{
		db:                 p.DB,
		log:                p.Log.Named("transaction.service"),
		clock:              p.Clock,
		genID:              p.GenID,
		repo:               p.Repo,
		products:           p.Products,
		customers:          p.Customers,
		tax:                p.Tax,
		metrics:            p.Metrics,
		allowNegativeStock: p.Config.AllowNegativeStock,
	}
}

type line struct {
	productID snowflake.ID
	quantity  int64
	unitPrice *decimal.Decimal
}

func (s *Service) RecordSale(ctx context.Context, req domain.RecordSaleRequest) (*domain.Sale, error) {
	sales, err := s.RecordSales(ctx, domain.RecordSalesRequest{
		Items:      []domain.Item{req.Item},
		CustomerID: req.CustomerID,
	})
	if err != nil {
		return nil, err
	}
	return &sales[0], nil
}

func (s *Service) RecordSales(ctx context.Context, req domain.RecordSalesRequest) ([]domain.Sale, error) {
	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyItems
	}

	lines := make([]line, 0, len(req.Items))
	for _, item := range req.Items {
		l, err := parseItem(item)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}

	var customerID *snowflake.ID
	if raw := strings.TrimSpace(req.CustomerID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			return nil, domain.ErrInvalidCustomer
		}
		customerID = &id
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var sales []domain.Sale
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products, err := s.resolveProducts(ctx, tx, lines)
		if err != nil {
			return err
		}

		if customerID != nil {
			customer, err := s.customers.FindByID(ctx, tx, *customerID)
			if err != nil {
				return fmt.Errorf("find customer: %w", err)
			}
			if customer == nil {
				return domain.ErrCustomerNotFound
			}
		}

		now := s.clock.Now()
		sales = make([]domain.Sale, 0, len(lines))
		for _, l := range lines {
			p := products[l.productID]
			if !s.allowNegativeStock && l.quantity > p.Quantity {
				return domain.ErrInsufficientStock
			}

			price := p.Price
			if l.unitPrice != nil {
				price = *l.unitPrice
			}
			b := s.tax.Compute(price, l.quantity, p.GSTRate, p.CessRate)

			sale := domain.Sale{
				ID:          s.genID.Generate(),
				ProductID:   l.productID,
				ProductName: p.Name,
				HSNCode:     p.HSNCode,
				Quantity:    l.quantity,
				UnitPrice:   price,
				Subtotal:    b.Subtotal,
				CGST:        b.CGST,
				SGST:        b.SGST,
				IGST:        b.IGST,
				GSTAmount:   b.GSTAmount,
				Cess:        b.Cess,
				Total:       b.Total,
				GSTRate:     p.GSTRate,
				CessRate:    p.CessRate,
				CustomerID:  customerID,
				CreatedAt:   now,
			}
			if err := s.repo.InsertSale(ctx, tx, &sale); err != nil {
				return fmt.Errorf("insert sale: %w", err)
			}
			if err := s.products.AdjustQuantity(ctx, tx, int64(l.productID), -l.quantity); err != nil {
				return fmt.Errorf("adjust stock: %w", err)
			}
			p.Quantity -= l.quantity

			if customerID != nil {
				if err := s.customers.AddPurchase(ctx, tx, *customerID, sale.Total, now); err != nil {
					return fmt.Errorf("update customer stats: %w", err)
				}
			}
			sales = append(sales, sale)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, sale := range sales {
		s.metrics.RecordSale(sale.GSTRate.String())
		s.log.Info("sale recorded",
			zap.String("sale_id", sale.ID.String()),
			zap.String("product_id", sale.ProductID.String()),
			zap.Int64("quantity", sale.Quantity),
			zap.String("total", sale.Total.StringFixed(2)),
		)
	}
	return sales, nil
}

func (s *Service) RecordPurchase(ctx context.Context, req domain.RecordPurchaseRequest) (*domain.Purchase, error) {
	l, err := parseItem(req.Item)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var purchase domain.Purchase
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products, err := s.resolveProducts(ctx, tx, []line{l})
		if err != nil {
			return err
		}
		p := products[l.productID]

		price := p.Price
		if l.unitPrice != nil {
			price = *l.unitPrice
		}
		b := s.tax.Compute(price, l.quantity, p.GSTRate, p.CessRate)

		purchase = domain.Purchase{
			ID:          s.genID.Generate(),
			ProductID:   l.productID,
			ProductName: p.Name,
			HSNCode:     p.HSNCode,
			Quantity:    l.quantity,
			UnitPrice:   price,
			Subtotal:    b.Subtotal,
			CGST:        b.CGST,
			SGST:        b.SGST,
			IGST:        b.IGST,
			GSTAmount:   b.GSTAmount,
			Cess:        b.Cess,
			Total:       b.Total,
			GSTRate:     p.GSTRate,
			CessRate:    p.CessRate,
			CreatedAt:   s.clock.Now(),
		}
		if err := s.repo.InsertPurchase(ctx, tx, &purchase); err != nil {
			return fmt.Errorf("insert purchase: %w", err)
		}
		if err := s.products.AdjustQuantity(ctx, tx, int64(l.productID), l.quantity); err != nil {
			return fmt.Errorf("adjust stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordPurchase(purchase.GSTRate.String())
	s.log.Info("purchase recorded",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("product_id", purchase.ProductID.String()),
		zap.Int64("quantity", purchase.Quantity),
		zap.String("total", purchase.Total.StringFixed(2)),
	)
	return &purchase, nil
}

func (s *Service) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	saleID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || saleID == 0 {
		return nil, domain.ErrInvalidID
	}

	sale, err := s.repo.FindSaleByID(ctx, s.db, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

func (s *Service) ListSales(ctx context.Context) ([]domain.Sale, error) {
	items, err := s.repo.ListSales(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Sale{}
	}
	return items, nil
}

func (s *Service) ListPurchases(ctx context.Context) ([]domain.Purchase, error) {
	items, err := s.repo.ListPurchases(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Purchase{}
	}
	return items, nil
}

// resolveProducts loads every referenced product once. The returned
// copies track on-hand quantity as lines are applied.
func (s *Service) resolveProducts(ctx context.Context, tx *gorm.DB, lines []line) (map[snowflake.ID]*productdomain.Product, error) {
	products := make(map[snowflake.ID]*productdomain.Product, len(lines))
	for _, l := range lines {
		if _, ok := products[l.productID]; ok {
			continue
		}
		p, err := s.products.FindByID(ctx, tx, int64(l.productID))
		if err != nil {
			return nil, fmt.Errorf("find product: %w", err)
		}
		if p == nil {
			return nil, domain.ErrProductNotFound
		}
		products[l.productID] = p
	}
	return products, nil
}

func parseItem(item domain.Item) (line, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(item.ProductID))
	if err != nil || id == 0 {
		return line{}, domain.ErrInvalidProduct
	}
	if item.Quantity <= 0 {
		return line{}, domain.ErrInvalidQuantity
	}
	if item.UnitPrice != nil && (item.UnitPrice.IsNegative() || !taxdomain.FitsScale(*item.UnitPrice, taxdomain.PriceScale)) {
		return line{}, domain.ErrInvalidPrice
	}
	return line{productID: id, quantity: item.Quantity, unitPrice: item.UnitPrice}, nil
}
