package pdf

import (
	"bytes"
	"context"
	"io"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateBill(ctx context.Context, bill BillData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	centered := props.Text{Align: align.Center}
	m.AddRow(10,
		text.NewCol(12, bill.ShopName, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	if bill.ShopAddress != "" {
		m.AddRow(6, text.NewCol(12, bill.ShopAddress, centered))
	}
	if bill.ShopGSTIN != "" {
		m.AddRow(6, text.NewCol(12, "GST No: "+bill.ShopGSTIN, centered))
	}
	m.AddRow(10,
		text.NewCol(12, "Tax Invoice", props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Align: align.Center,
			Top:   2,
		}),
	)

	m.AddRow(28,
		col.New(6).Add(
			text.New("Phone: "+bill.ShopPhone, props.Text{Top: 0}),
			text.New("Email: "+bill.ShopEmail, props.Text{Top: 5}),
			text.New("Invoice No: "+bill.BillNumber, props.Text{Top: 10}),
			text.New("Date: "+bill.BillDate, props.Text{Top: 15}),
			text.New("Payment: "+bill.PaymentMethod, props.Text{Top: 20}),
		),
		customerCol(bill),
	)

	header := props.Text{Style: fontstyle.Bold, Size: 8}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}
	m.AddRow(8,
		text.NewCol(3, "Item", header),
		text.NewCol(1, "HSN", header),
		text.NewCol(1, "Qty", headerRight),
		text.NewCol(1, "Rate", headerRight),
		text.NewCol(2, "Amount", headerRight),
		text.NewCol(1, "GST %", headerRight),
		text.NewCol(1, "GST Amt", headerRight),
		text.NewCol(2, "Total", headerRight),
	)
	m.AddRow(2, line.NewCol(12))

	cell := props.Text{Size: 8}
	cellRight := props.Text{Size: 8, Align: align.Right}
	for _, item := range bill.Items {
		m.AddRow(7,
			text.NewCol(3, item.Item, cell),
			text.NewCol(1, item.HSN, cell),
			text.NewCol(1, strconv.FormatInt(item.Quantity, 10), cellRight),
			text.NewCol(1, item.Rate, cellRight),
			text.NewCol(2, item.Amount, cellRight),
			text.NewCol(1, item.GSTRate+"%", cellRight),
			text.NewCol(1, item.GSTAmount, cellRight),
			text.NewCol(2, item.Total, cellRight),
		)
	}
	m.AddRow(2, line.NewCol(12))

	totalRow(m, "Subtotal", bill.Subtotal, false)
	totalRow(m, "CGST", bill.CGST, false)
	totalRow(m, "SGST", bill.SGST, false)
	totalRow(m, "Total", bill.Total, true)

	if bill.QRContent != "" {
		m.AddRow(45,
			col.New(4),
			code.NewQrCol(4, bill.QRContent, props.Rect{Center: true, Percent: 90}),
			col.New(4),
		)
		m.AddRow(6, text.NewCol(12, "Scan to verify bill", props.Text{Size: 8, Align: align.Center}))
	}
	m.AddRow(8, text.NewCol(12, "This is a computer generated invoice", props.Text{
		Size:  8,
		Align: align.Center,
		Top:   2,
	}))

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

func customerCol(bill BillData) core.Col {
	if bill.CustomerName == "" {
		return col.New(6).Add(
			text.New("Bill To:", props.Text{Style: fontstyle.Bold}),
			text.New("Walk-in Customer", props.Text{Top: 5}),
		)
	}

	c := col.New(6).Add(
		text.New("Bill To:", props.Text{Style: fontstyle.Bold}),
		text.New(bill.CustomerName, props.Text{Top: 5}),
	)
	top := 10.0
	if bill.CustomerMobile != "" {
		c = c.Add(text.New("Mobile: "+bill.CustomerMobile, props.Text{Top: top}))
		top += 5
	}
	if bill.CustomerGSTNo != "" {
		c = c.Add(text.New("GST No: "+bill.CustomerGSTNo, props.Text{Top: top}))
	}
	return c
}

func totalRow(m core.Maroto, label, value string, bold bool) {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	m.AddRow(6,
		col.New(8),
		text.NewCol(2, label, props.Text{Size: 9, Style: style}),
		text.NewCol(2, value, props.Text{Size: 9, Style: style, Align: align.Right}),
	)
}
