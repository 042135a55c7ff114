package server

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/saletrack/internal/catalog/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) AnalyzeImport(c *gin.Context) {
	file, ok := s.openWorkbook(c)
	if !ok {
		return
	}
	defer file.Close()

	resp, err := s.catalogSvc.Analyze(c.Request.Context(), file)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ImportProducts(c *gin.Context) {
	raw := strings.TrimSpace(c.PostForm("mappings"))
	if raw == "" {
		AbortWithError(c, newValidationError("mappings", "required", "no column mappings provided"))
		return
	}
	var mappings map[string]string
	if err := json.Unmarshal([]byte(raw), &mappings); err != nil {
		AbortWithError(c, newValidationError("mappings", "invalid_mappings", "mappings must be a JSON object"))
		return
	}

	file, ok := s.openWorkbook(c)
	if !ok {
		return
	}
	defer file.Close()

	resp, err := s.catalogSvc.Import(c.Request.Context(), catalogdomain.ImportRequest{
		Workbook: file,
		Mappings: mappings,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ExportProducts(c *gin.Context) {
	out, err := s.catalogSvc.Export(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="products_export.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, out)
}

// openWorkbook reads the uploaded "file" form field. It aborts the
// request and returns false when the upload is missing or not xlsx.
func (s *Server) openWorkbook(c *gin.Context) (io.ReadCloser, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "required", "no file uploaded"))
		return nil, false
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		AbortWithError(c, newValidationError("file", "invalid_file", "file must be an .xlsx workbook"))
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		AbortWithError(c, err)
		return nil, false
	}
	return file, true
}
