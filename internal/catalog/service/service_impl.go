package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/saletrack/internal/catalog/domain"
	"github.com/smallbiznis/saletrack/internal/clock"
	"github.com/smallbiznis/saletrack/internal/observability/metrics"
	productdomain "github.com/smallbiznis/saletrack/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	GenID    *snowflake.Node
	Products productdomain.Repository
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	genID    *snowflake.Node
	products productdomain.Repository
	metrics  *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("catalog.service"),
		clock:    p.Clock,
		genID:    p.GenID,
		products: p.Products,
		metrics:  p.Metrics,
	}
}

func (s *Service) Analyze(ctx context.Context, workbook io.Reader) (*domain.Analysis, error) {
	header, rows, err := readSheet(workbook)
	if err != nil {
		return nil, err
	}

	limit := len(rows)
	if limit > domain.PreviewRows {
		limit = domain.PreviewRows
	}

	preview := make([]map[string]string, 0, limit)
	for _, row := range rows[:limit] {
		record := make(map[string]string, len(header))
		for i, col := range header {
			record[col] = strings.TrimSpace(row.cells[i])
		}
		preview = append(preview, record)
	}

	return &domain.Analysis{Columns: header, Preview: preview}, nil
}

func (s *Service) Import(ctx context.Context, req domain.ImportRequest) (*domain.ImportResult, error) {
	header, rows, err := readSheet(req.Workbook)
	if err != nil {
		return nil, err
	}

	columns, err := resolveMappings(header, req.Mappings)
	if err != nil {
		return nil, err
	}

	var (
		rowErrors []string
		seen      = make(map[string]int)
		attrs     = make([]productdomain.Attributes, 0, len(rows))
	)
	for _, row := range rows {
		n := row.number
		a, err := parseRow(row.cells, columns)
		if err == nil && a.Barcode != nil {
			err = s.checkBarcode(ctx, *a.Barcode, seen, n)
		}
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %s", n, err.Error()))
			continue
		}
		attrs = append(attrs, a)
	}

	if len(rowErrors) > 0 {
		s.metrics.RecordImportRows("rejected", len(rows))
		return nil, &domain.ImportError{Rows: rowErrors}
	}

	now := s.clock.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range attrs {
			p := &productdomain.Product{
				ID:        s.genID.Generate().Int64(),
				CreatedAt: now,
				UpdatedAt: now,
			}
			a.Apply(p)
			if err := s.products.Create(ctx, tx, p); err != nil {
				return fmt.Errorf("create product %q: %w", p.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordImportRows("imported", len(attrs))
	s.log.Info("catalog imported", zap.Int("products", len(attrs)))
	return &domain.ImportResult{Imported: len(attrs)}, nil
}

func (s *Service) checkBarcode(ctx context.Context, barcode string, seen map[string]int, row int) error {
	if first, ok := seen[barcode]; ok {
		return fmt.Errorf("duplicate barcode %s (also in row %d)", barcode, first)
	}
	seen[barcode] = row

	existing, err := s.products.FindByBarcode(ctx, s.db, barcode)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("duplicate barcode: %s", barcode)
	}
	return nil
}

func (s *Service) Export(ctx context.Context) ([]byte, error) {
	items, err := s.products.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrNothingToExport
	}

	header := append([]string{"id"}, domain.Fields...)
	rows := make([][]any, 0, len(items))
	for _, p := range items {
		rows = append(rows, []any{
			snowflake.ID(p.ID).String(),
			p.Name,
			p.Price.InexactFloat64(),
			p.Quantity,
			p.MRP.InexactFloat64(),
			deref(p.Barcode),
			deref(p.Unit),
			deref(p.Category),
			deref(p.HSNCode),
			p.GSTRate.InexactFloat64(),
			p.CessRate.InexactFloat64(),
		})
	}

	out, err := writeSheet(header, rows)
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.log.Info("catalog exported", zap.Int("products", len(items)))
	return out, nil
}

// resolveMappings turns column->field mappings into field->column index.
func resolveMappings(header []string, mappings map[string]string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		if col != "" {
			index[col] = i
		}
	}

	columns := make(map[string]int, len(mappings))
	for col, field := range mappings {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if !domain.IsField(field) {
			return nil, fmt.Errorf("%w: unknown field %q", domain.ErrInvalidMapping, field)
		}
		pos, ok := index[strings.TrimSpace(col)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown column %q", domain.ErrInvalidMapping, col)
		}
		if _, dup := columns[field]; dup {
			return nil, fmt.Errorf("%w: field %q mapped twice", domain.ErrInvalidMapping, field)
		}
		columns[field] = pos
	}

	var missing []string
	for _, field := range domain.RequiredFields {
		if _, ok := columns[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingFields, strings.Join(missing, ", "))
	}
	return columns, nil
}

func parseRow(row []string, columns map[string]int) (productdomain.Attributes, error) {
	cell := func(field string) string {
		pos, ok := columns[field]
		if !ok {
			return ""
		}
		return strings.TrimSpace(row[pos])
	}
	optional := func(field string) *string {
		v := cell(field)
		if v == "" {
			return nil
		}
		return &v
	}

	var a productdomain.Attributes
	a.Name = cell(domain.FieldName)

	var err error
	if a.Price, err = parseDecimal(cell(domain.FieldPrice)); err != nil {
		return a, errors.New("price must be a number")
	}
	qty, err := parseDecimal(cell(domain.FieldQuantity))
	if err != nil || !qty.IsInteger() {
		return a, errors.New("quantity must be a whole number")
	}
	a.Quantity = qty.IntPart()
	if a.MRP, err = parseDecimal(cell(domain.FieldMRP)); err != nil {
		return a, errors.New("mrp must be a number")
	}
	if a.GSTRate, err = parseDecimal(cell(domain.FieldGSTRate)); err != nil {
		return a, errors.New("gst rate must be a number")
	}
	if a.CessRate, err = parseDecimal(cell(domain.FieldCessRate)); err != nil {
		return a, errors.New("cess rate must be a number")
	}
	a.Barcode = optional(domain.FieldBarcode)
	a.Unit = optional(domain.FieldUnit)
	a.Category = optional(domain.FieldCategory)
	a.HSNCode = optional(domain.FieldHSNCode)

	a = a.Normalize()
	if err := a.Validate(); err != nil {
		return a, errors.New(rowMessage(a, err))
	}
	return a, nil
}

// parseDecimal treats an empty cell as zero.
func parseDecimal(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(v)
}

func rowMessage(a productdomain.Attributes, err error) string {
	switch {
	case errors.Is(err, productdomain.ErrInvalidName):
		return "product name cannot be empty"
	case errors.Is(err, productdomain.ErrInvalidPrice) && a.Price.IsPositive():
		return "price allows at most 4 decimal places"
	case errors.Is(err, productdomain.ErrInvalidPrice):
		return "price must be greater than 0"
	case errors.Is(err, productdomain.ErrInvalidQuantity):
		return "quantity cannot be negative"
	case errors.Is(err, productdomain.ErrInvalidMRP):
		return "mrp must be a non-negative amount with at most 4 decimal places"
	case errors.Is(err, productdomain.ErrInvalidGSTRate):
		return "invalid GST rate, must be 0, 5, 12, 18 or 28"
	case errors.Is(err, productdomain.ErrInvalidCessRate):
		return "cess rate must be non-negative with at most 2 decimal places"
	default:
		return err.Error()
	}
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
