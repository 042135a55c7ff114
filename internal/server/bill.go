package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/saletrack/internal/invoice/domain"
)

func (s *Server) ListBills(c *gin.Context) {
	resp, err := s.invoiceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBill(c *gin.Context) {
	resp, err := s.invoiceSvc.Get(c.Request.Context(), c.Param("number"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) BillHTML(c *gin.Context) {
	ctx := c.Request.Context()
	bill, err := s.invoiceSvc.Get(ctx, c.Param("number"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	html, err := s.invoiceSvc.RenderHTML(ctx, bill)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (s *Server) BillPDF(c *gin.Context) {
	bill, err := s.invoiceSvc.Get(c.Request.Context(), c.Param("number"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeBillPDF(c, bill)
}

func (s *Server) SendBill(c *gin.Context) {
	var req invoicedomain.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.Number = c.Param("number")

	if err := s.invoiceSvc.Send(c.Request.Context(), req); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"number": req.Number, "sent_to": req.Email}})
}
