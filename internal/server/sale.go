package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/saletrack/internal/invoice/domain"
	invoiceservice "github.com/smallbiznis/saletrack/internal/invoice/service"
	transactiondomain "github.com/smallbiznis/saletrack/internal/transaction/domain"
)

type checkoutRequest struct {
	Items         []transactiondomain.Item `json:"items"`
	CustomerID    string                   `json:"customer_id"`
	PaymentMethod string                   `json:"payment_method"`
	Format        string                   `json:"format"`
}

func (s *Server) RecordSale(c *gin.Context) {
	var req transactiondomain.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.txSvc.RecordSale(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListSales(c *gin.Context) {
	resp, err := s.txSvc.ListSales(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Checkout records a multi-item sale and assembles its bill. The bill
// is returned as JSON, or as a PDF download when format is "pdf".
func (s *Server) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format != "" && format != "json" && format != "pdf" {
		AbortWithError(c, newValidationError("format", "invalid_format", "format must be json or pdf"))
		return
	}

	ctx := c.Request.Context()
	sales, err := s.txSvc.RecordSales(ctx, transactiondomain.RecordSalesRequest{
		Items:      req.Items,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	bill, err := s.invoiceSvc.Assemble(ctx, invoicedomain.AssembleRequest{
		Sales:         sales,
		CustomerID:    req.CustomerID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if format == "pdf" {
		s.writeBillPDF(c, bill)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"sales": sales, "bill": bill}})
}

func (s *Server) SalePDF(c *gin.Context) {
	bill, err := s.invoiceSvc.ForSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeBillPDF(c, bill)
}

func (s *Server) RecordPurchase(c *gin.Context) {
	var req transactiondomain.RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.txSvc.RecordPurchase(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListPurchases(c *gin.Context) {
	resp, err := s.txSvc.ListPurchases(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) writeBillPDF(c *gin.Context, bill *invoicedomain.Bill) {
	doc, err := s.invoiceSvc.RenderPDF(c.Request.Context(), bill)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+invoiceservice.FileName(bill.Number, "pdf")+`"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}
