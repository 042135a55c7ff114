package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/saletrack/internal/clock"
	"github.com/smallbiznis/saletrack/internal/config"
	customerdomain "github.com/smallbiznis/saletrack/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/saletrack/internal/invoice/domain"
	invoiceformat "github.com/smallbiznis/saletrack/internal/invoice/format"
	"github.com/smallbiznis/saletrack/internal/invoice/render"
	"github.com/smallbiznis/saletrack/internal/observability/metrics"
	"github.com/smallbiznis/saletrack/internal/providers/email"
	"github.com/smallbiznis/saletrack/internal/providers/pdf"
	transactiondomain "github.com/smallbiznis/saletrack/internal/transaction/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	GenID     *snowflake.Node
	Store     *config.StoreConfigHolder
	Repo      invoicedomain.Repository
	Sales     transactiondomain.Repository
	Customers customerdomain.Repository
	Renderer  render.Renderer
	PDF       pdf.Provider
	Email     email.Provider
	Metrics   *metrics.Metrics `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	genID     *snowflake.Node
	store     *config.StoreConfigHolder
	repo      invoicedomain.Repository
	sales     transactiondomain.Repository
	customers customerdomain.Repository
	renderer  render.Renderer
	pdf       pdf.Provider
	email     email.Provider
	metrics   *metrics.Metrics

	// seqMu serializes bill number assignment.
	seqMu sync.Mutex
}

func NewService(p Params) invoicedomain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("invoice.service"),
		clock:     p.Clock,
		genID:     p.GenID,
		store:     p.Store,
		repo:      p.Repo,
		sales:     p.Sales,
		customers: p.Customers,
		renderer:  p.Renderer,
		pdf:       p.PDF,
		email:     p.Email,
		metrics:   p.Metrics,
	}
}

func (s *Service) Assemble(ctx context.Context, req invoicedomain.AssembleRequest) (*invoicedomain.Bill, error) {
	if len(req.Sales) == 0 {
		return nil, invoicedomain.ErrEmptyBill
	}

	storeCfg := s.store.Get()
	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if method == "" {
		method = storeCfg.Billing.PaymentMethod
	}
	if method == "" {
		method = invoicedomain.DefaultPaymentMethod
	}
	if !invoicedomain.IsPaymentMethod(method) {
		return nil, invoicedomain.ErrInvalidPaymentMethod
	}

	customerID, err := resolveCustomerID(req)
	if err != nil {
		return nil, err
	}

	s.seqMu.Lock()
	defer s.seqMu.Unlock()

	var bill *invoicedomain.Bill
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer *customerdomain.Customer
		if customerID != nil {
			found, err := s.customers.FindByID(ctx, tx, *customerID)
			if err != nil {
				return fmt.Errorf("find customer: %w", err)
			}
			if found == nil {
				return invoicedomain.ErrCustomerNotFound
			}
			customer = found
		}

		maxSeq, err := s.repo.MaxSeq(ctx, tx)
		if err != nil {
			return fmt.Errorf("read bill sequence: %w", err)
		}
		seq := maxSeq + 1
		if seq < storeCfg.Billing.NumberBase {
			seq = storeCfg.Billing.NumberBase
		}

		now := s.clock.Now()
		number, err := invoiceformat.FormatBillNumber(storeCfg.Billing.NumberTemplate, now, seq)
		if err != nil {
			return err
		}

		bill = buildBill(s.genID, req.Sales, customer, seq, number, method, now)
		if err := s.repo.Insert(ctx, tx, bill); err != nil {
			return fmt.Errorf("insert bill: %w", err)
		}
		if err := s.repo.InsertItems(ctx, tx, bill.Items); err != nil {
			return fmt.Errorf("insert bill items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordBillAssembled()
	s.log.Info("bill assembled",
		zap.String("bill_number", bill.Number),
		zap.Int("items", len(bill.Items)),
		zap.String("total", bill.Total.StringFixed(2)),
	)
	return bill, nil
}

func buildBill(
	genID *snowflake.Node,
	sales []transactiondomain.Sale,
	customer *customerdomain.Customer,
	seq int64,
	number string,
	method string,
	now time.Time,
) *invoicedomain.Bill {
	bill := &invoicedomain.Bill{
		ID:            genID.Generate(),
		Seq:           seq,
		Number:        number,
		Subtotal:      decimal.Zero,
		TotalGST:      decimal.Zero,
		PaymentMethod: method,
		Status:        invoicedomain.BillStatusPending,
		Metadata:      datatypes.JSONMap{},
		CreatedAt:     now,
		Items:         make([]invoicedomain.BillItem, 0, len(sales)),
	}

	if customer != nil {
		id := customer.ID
		bill.CustomerID = &id
		bill.Metadata[invoicedomain.MetaCustomerName] = customer.Name
		bill.Metadata[invoicedomain.MetaCustomerMobile] = customer.Mobile
		if customer.Email != nil {
			bill.Metadata[invoicedomain.MetaCustomerEmail] = *customer.Email
		}
		if customer.GSTNo != nil {
			bill.Metadata[invoicedomain.MetaCustomerGSTNo] = *customer.GSTNo
		}
	}

	for _, sale := range sales {
		bill.Subtotal = bill.Subtotal.Add(sale.Subtotal)
		bill.TotalGST = bill.TotalGST.Add(sale.GSTAmount)
		bill.Items = append(bill.Items, invoicedomain.BillItem{
			ID:          genID.Generate(),
			BillID:      bill.ID,
			SaleID:      sale.ID,
			ProductName: sale.ProductName,
			HSNCode:     sale.HSNCode,
			Quantity:    sale.Quantity,
			UnitPrice:   sale.UnitPrice,
			Subtotal:    sale.Subtotal,
			GSTRate:     sale.GSTRate,
			GSTAmount:   sale.GSTAmount,
			Cess:        sale.Cess,
			Total:       sale.Total,
		})
	}
	bill.Total = bill.Subtotal.Add(bill.TotalGST)
	return bill
}

// resolveCustomerID prefers the explicit request customer and otherwise
// inherits the customer shared by every sale.
func resolveCustomerID(req invoicedomain.AssembleRequest) (*snowflake.ID, error) {
	if raw := strings.TrimSpace(req.CustomerID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			return nil, invoicedomain.ErrInvalidCustomer
		}
		return &id, nil
	}

	var shared *snowflake.ID
	for _, sale := range req.Sales {
		if sale.CustomerID == nil {
			return nil, nil
		}
		if shared != nil && *shared != *sale.CustomerID {
			return nil, nil
		}
		id := *sale.CustomerID
		shared = &id
	}
	return shared, nil
}

func (s *Service) Get(ctx context.Context, number string) (*invoicedomain.Bill, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, invoicedomain.ErrBillNotFound
	}

	bill, err := s.repo.FindByNumber(ctx, s.db, number)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, invoicedomain.ErrBillNotFound
	}
	if err := s.loadItems(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *Service) List(ctx context.Context) ([]invoicedomain.Bill, error) {
	bills, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	for i := range bills {
		if err := s.loadItems(ctx, &bills[i]); err != nil {
			return nil, err
		}
	}
	if bills == nil {
		bills = []invoicedomain.Bill{}
	}
	return bills, nil
}

func (s *Service) ForSale(ctx context.Context, saleID string) (*invoicedomain.Bill, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(saleID))
	if err != nil || id == 0 {
		return nil, transactiondomain.ErrInvalidID
	}

	existing, err := s.repo.FindBySaleID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.loadItems(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	sale, err := s.sales.FindSaleByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, transactiondomain.ErrNotFound
	}
	return s.Assemble(ctx, invoicedomain.AssembleRequest{
		Sales: []transactiondomain.Sale{*sale},
	})
}

func (s *Service) loadItems(ctx context.Context, bill *invoicedomain.Bill) error {
	items, err := s.repo.ListItems(ctx, s.db, bill.ID)
	if err != nil {
		return err
	}
	if items == nil {
		items = []invoicedomain.BillItem{}
	}
	bill.Items = items
	return nil
}
