package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/saletrack/internal/config"
	invoicedomain "github.com/smallbiznis/saletrack/internal/invoice/domain"
	"github.com/smallbiznis/saletrack/internal/invoice/render"
	"github.com/smallbiznis/saletrack/internal/providers/email"
	"github.com/smallbiznis/saletrack/internal/providers/pdf"
	"go.uber.org/zap"
)

func (s *Service) RenderHTML(ctx context.Context, bill *invoicedomain.Bill) ([]byte, error) {
	if bill == nil {
		return nil, invoicedomain.ErrBillNotFound
	}

	shop := s.store.Get().Shop
	content, err := render.QRContent(invoicedomain.NewQRPayload(*bill, shop.GSTIN))
	if err != nil {
		return nil, err
	}

	html, err := s.renderer.RenderHTML(render.RenderInput{
		Shop:      shop,
		Bill:      *bill,
		QRContent: content,
	})
	if err != nil {
		return nil, fmt.Errorf("render bill html: %w", err)
	}
	return []byte(html), nil
}

func (s *Service) RenderPDF(ctx context.Context, bill *invoicedomain.Bill) ([]byte, error) {
	if bill == nil {
		return nil, invoicedomain.ErrBillNotFound
	}

	shop := s.store.Get().Shop
	content, err := render.QRContent(invoicedomain.NewQRPayload(*bill, shop.GSTIN))
	if err != nil {
		return nil, err
	}

	reader, err := s.pdf.GenerateBill(ctx, buildPDFData(shop, bill, content))
	if err != nil {
		return nil, fmt.Errorf("render bill pdf: %w", err)
	}
	return io.ReadAll(reader)
}

func (s *Service) Send(ctx context.Context, req invoicedomain.SendRequest) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return invoicedomain.ErrInvalidEmail
	}

	bill, err := s.Get(ctx, req.Number)
	if err != nil {
		return err
	}

	doc, err := s.RenderPDF(ctx, bill)
	if err != nil {
		return err
	}
	body, err := s.RenderHTML(ctx, bill)
	if err != nil {
		return err
	}

	shop := s.store.Get().Shop
	err = s.email.Send(ctx, email.Message{
		To:       []string{addr.Address},
		Subject:  fmt.Sprintf("Invoice %s from %s", bill.Number, shop.Name),
		HTMLBody: string(body),
		Attachments: []email.Attachment{{
			Filename:    FileName(bill.Number, "pdf"),
			ContentType: "application/pdf",
			Data:        doc,
		}},
	})
	s.metrics.RecordBillDelivery("email", err)
	if err != nil {
		if errors.Is(err, email.ErrNotConfigured) {
			return invoicedomain.ErrEmailNotConfigured
		}
		s.log.Warn("bill delivery failed",
			zap.String("bill_number", bill.Number),
			zap.Error(err),
		)
		return fmt.Errorf("send bill: %w", err)
	}

	s.log.Info("bill sent",
		zap.String("bill_number", bill.Number),
	)
	return nil
}

// FileName builds a download file name such as "inv-01000.pdf".
func FileName(number, ext string) string {
	return slug.Make(number) + "." + ext
}

func buildPDFData(shop config.ShopProfile, bill *invoicedomain.Bill, qrContent string) pdf.BillData {
	half := bill.TotalGST.Div(decimal.NewFromInt(2))
	data := pdf.BillData{
		ShopName:       shop.Name,
		ShopAddress:    shop.Address,
		ShopGSTIN:      shop.GSTIN,
		ShopPhone:      shop.Phone,
		ShopEmail:      shop.Email,
		BillNumber:     bill.Number,
		BillDate:       bill.CreatedAt.Format(invoicedomain.DateTimeLayout),
		PaymentMethod:  bill.PaymentMethod,
		CustomerName:   bill.CustomerName(),
		CustomerMobile: bill.CustomerMobile(),
		CustomerGSTNo:  bill.CustomerGSTNo(),
		Subtotal:       pdfMoney(bill.Subtotal),
		CGST:           pdfMoney(half),
		SGST:           pdfMoney(half),
		Total:          pdfMoney(bill.Total),
		QRContent:      qrContent,
		Items:          make([]pdf.BillLine, 0, len(bill.Items)),
	}

	for _, item := range bill.Items {
		hsn := "-"
		if item.HSNCode != nil && *item.HSNCode != "" {
			hsn = *item.HSNCode
		}
		data.Items = append(data.Items, pdf.BillLine{
			Item:      item.ProductName,
			HSN:       hsn,
			Quantity:  item.Quantity,
			Rate:      pdfMoney(item.UnitPrice),
			Amount:    pdfMoney(item.Subtotal),
			GSTRate:   render.FormatRate(item.GSTRate),
			GSTAmount: pdfMoney(item.GSTAmount),
			Total:     pdfMoney(item.Subtotal.Add(item.GSTAmount)),
		})
	}
	return data
}

// The PDF core fonts have no rupee glyph.
func pdfMoney(amount decimal.Decimal) string {
	return "Rs. " + amount.StringFixed(2)
}
