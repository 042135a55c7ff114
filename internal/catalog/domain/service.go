package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Mappable product fields a spreadsheet column can be bound to.
const (
	FieldName     = "name"
	FieldPrice    = "price"
	FieldQuantity = "quantity"
	FieldMRP      = "mrp"
	FieldBarcode  = "barcode"
	FieldUnit     = "unit"
	FieldCategory = "category"
	FieldHSNCode  = "hsn_code"
	FieldGSTRate  = "gst_rate"
	FieldCessRate = "cess_rate"
)

// Fields lists the mappable fields in export column order.
var Fields = []string{
	FieldName,
	FieldPrice,
	FieldQuantity,
	FieldMRP,
	FieldBarcode,
	FieldUnit,
	FieldCategory,
	FieldHSNCode,
	FieldGSTRate,
	FieldCessRate,
}

var RequiredFields = []string{FieldName, FieldPrice, FieldQuantity}

// PreviewRows is the number of data rows returned by Analyze.
const PreviewRows = 5

type Analysis struct {
	Columns []string            `json:"columns"`
	Preview []map[string]string `json:"preview"`
}

// ImportRequest binds spreadsheet column headers to product fields.
type ImportRequest struct {
	Workbook io.Reader
	Mappings map[string]string
}

type ImportResult struct {
	Imported int `json:"imported"`
}

type Service interface {
	Analyze(ctx context.Context, workbook io.Reader) (*Analysis, error)
	Import(ctx context.Context, req ImportRequest) (*ImportResult, error)
	Export(ctx context.Context) ([]byte, error)
}

var (
	ErrEmptyWorkbook    = errors.New("empty_workbook")
	ErrInvalidWorkbook  = errors.New("invalid_workbook")
	ErrInvalidMapping   = errors.New("invalid_mapping")
	ErrNothingToExport  = errors.New("nothing_to_export")
	ErrMissingFields    = errors.New("missing_required_fields")
)

// ImportError carries every row-level failure of a rejected import.
type ImportError struct {
	Rows []string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("validation errors found: %s", strings.Join(e.Rows, "; "))
}

// IsField reports whether name is a mappable product field.
func IsField(name string) bool {
	for _, f := range Fields {
		if f == name {
			return true
		}
	}
	return false
}
