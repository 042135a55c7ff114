package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/smallbiznis/saletrack/internal/report/domain"
)

func (s *Server) Dashboard(c *gin.Context) {
	resp, err := s.reportSvc.Dashboard(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReportCSV(c *gin.Context) {
	kind := reportdomain.Kind(strings.ToLower(strings.TrimSpace(c.DefaultQuery("type", string(reportdomain.KindSales)))))

	out, err := s.reportSvc.CSV(c.Request.Context(), kind)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+string(kind)+`_report.csv"`)
	c.Data(http.StatusOK, "text/csv", out)
}
