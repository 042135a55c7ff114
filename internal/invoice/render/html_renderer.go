package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/saletrack/internal/config"
	"github.com/smallbiznis/saletrack/internal/invoice/domain"
)

const billHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Tax Invoice {{.Bill.Number}}</title>
  <style>
    body { font-family: Arial, Helvetica, sans-serif; margin: 20px; color: #1a1f36; }
    .header { text-align: center; margin-bottom: 20px; }
    .header h1 { margin: 0 0 4px 0; }
    .details { display: flex; justify-content: space-between; margin-bottom: 20px; }
    .details p { margin: 2px 0; }
    .bill-items { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
    .bill-items th, .bill-items td { border: 1px solid #ddd; padding: 8px; text-align: left; }
    .bill-items .num { text-align: right; }
    .totals { margin-left: auto; width: 300px; }
    .totals p { display: flex; justify-content: space-between; margin: 4px 0; }
    .qr-code { text-align: center; margin-top: 20px; }
    .footer { text-align: center; margin-top: 20px; font-size: 12px; color: #697386; }
  </style>
</head>
<body>
  <div class="header">
    <h1>{{.Shop.Name}}</h1>
    {{if .Shop.Address}}<p>{{.Shop.Address}}</p>{{end}}
    {{if .Shop.GSTIN}}<p>GST No: {{.Shop.GSTIN}}</p>{{end}}
    <h2>Tax Invoice</h2>
  </div>

  <div class="details">
    <div>
      {{if .Shop.Phone}}<p>Phone: {{.Shop.Phone}}</p>{{end}}
      {{if .Shop.Email}}<p>Email: {{.Shop.Email}}</p>{{end}}
      <p>Invoice No: {{.Bill.Number}}</p>
      <p>Date: {{formatDate .Bill}}</p>
      <p>Payment: {{.Bill.PaymentMethod}}</p>
    </div>
    <div>
      <h3>Bill To:</h3>
      {{if .Bill.CustomerName}}
      <p>{{.Bill.CustomerName}}</p>
      {{if .Bill.CustomerMobile}}<p>Mobile: {{.Bill.CustomerMobile}}</p>{{end}}
      {{if .Bill.CustomerGSTNo}}<p>GST No: {{.Bill.CustomerGSTNo}}</p>{{end}}
      {{else}}
      <p>Walk-in Customer</p>
      {{end}}
    </div>
  </div>

  <table class="bill-items">
    <thead>
      <tr>
        <th>Item</th>
        <th>HSN</th>
        <th class="num">Quantity</th>
        <th class="num">Rate</th>
        <th class="num">Amount</th>
        <th class="num">GST %</th>
        <th class="num">GST Amt</th>
        <th class="num">Total</th>
      </tr>
    </thead>
    <tbody>
      {{range .Bill.Items}}
      <tr>
        <td>{{.ProductName}}</td>
        <td>{{hsn .HSNCode}}</td>
        <td class="num">{{.Quantity}}</td>
        <td class="num">{{money .UnitPrice}}</td>
        <td class="num">{{money .Subtotal}}</td>
        <td class="num">{{rate .GSTRate}}%</td>
        <td class="num">{{money .GSTAmount}}</td>
        <td class="num">{{money (lineTotal .Subtotal .GSTAmount)}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <div class="totals">
    <p><strong>Subtotal:</strong> <span>{{money .Bill.Subtotal}}</span></p>
    <p><strong>CGST:</strong> <span>{{money (half .Bill.TotalGST)}}</span></p>
    <p><strong>SGST:</strong> <span>{{money (half .Bill.TotalGST)}}</span></p>
    <p><strong>Total:</strong> <span>{{money .Bill.Total}}</span></p>
  </div>

  <div class="qr-code">
    <img src="{{.QRCode}}" width="150" alt="Bill QR code">
    <p>Scan to verify bill</p>
  </div>

  <div class="footer">
    <p>This is a computer generated invoice</p>
  </div>
</body>
</html>
`

// RenderInput is the view model for a bill document.
type RenderInput struct {
	Shop config.ShopProfile
	Bill domain.Bill
	// QRContent is the JSON payload encoded into the QR image.
	QRContent string
}

type Renderer interface {
	RenderHTML(input RenderInput) (string, error)
}

type HTMLRenderer struct {
	tpl *template.Template
}

type htmlView struct {
	Shop   config.ShopProfile
	Bill   domain.Bill
	QRCode template.URL
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"money":      FormatMoney,
		"rate":       FormatRate,
		"half":       func(v decimal.Decimal) decimal.Decimal { return v.Div(decimal.NewFromInt(2)) },
		"lineTotal":  func(a, b decimal.Decimal) decimal.Decimal { return a.Add(b) },
		"hsn":        formatHSN,
		"formatDate": func(b domain.Bill) string { return b.CreatedAt.Format(domain.DateTimeLayout) },
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("bill").Funcs(funcs).Parse(billHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(input RenderInput) (string, error) {
	uri, err := qrDataURI(input.QRContent)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input.Shop.Name) == "" {
		input.Shop.Name = "Tax Invoice"
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, htmlView{
		Shop:   input.Shop,
		Bill:   input.Bill,
		QRCode: template.URL(uri),
	}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatMoney renders an amount in rupees with two decimals.
func FormatMoney(amount decimal.Decimal) string {
	return "₹" + amount.StringFixed(2)
}

// FormatRate drops trailing zeros from a percentage.
func FormatRate(rate decimal.Decimal) string {
	return rate.String()
}

func formatHSN(code *string) string {
	if code == nil || strings.TrimSpace(*code) == "" {
		return "-"
	}
	return *code
}
