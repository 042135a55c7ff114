package pdf

import (
	"context"
	"io"

	"go.uber.org/fx"
)

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)

type Provider interface {
	GenerateBill(ctx context.Context, data BillData) (io.Reader, error)
}

// BillData is the pre-formatted content of a tax invoice PDF.
type BillData struct {
	ShopName    string
	ShopAddress string
	ShopGSTIN   string
	ShopPhone   string
	ShopEmail   string

	BillNumber    string
	BillDate      string
	PaymentMethod string

	CustomerName   string
	CustomerMobile string
	CustomerGSTNo  string

	Items []BillLine

	Subtotal string
	CGST     string
	SGST     string
	Total    string

	// QRContent is encoded as a native QR code on the page.
	QRContent string
}

type BillLine struct {
	Item      string
	HSN       string
	Quantity  int64
	Rate      string
	Amount    string
	GSTRate   string
	GSTAmount string
	Total     string
}
