package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/saletrack/internal/auth/domain"
	catalogdomain "github.com/smallbiznis/saletrack/internal/catalog/domain"
	customerdomain "github.com/smallbiznis/saletrack/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/saletrack/internal/invoice/domain"
	productdomain "github.com/smallbiznis/saletrack/internal/product/domain"
	reportdomain "github.com/smallbiznis/saletrack/internal/report/domain"
	transactiondomain "github.com/smallbiznis/saletrack/internal/transaction/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrTooManyRequests = errors.New("too_many_requests")
)

// validationSentinels are domain errors surfaced as 400 validation_error.
var validationSentinels = []error{
	productdomain.ErrInvalidName,
	productdomain.ErrInvalidPrice,
	productdomain.ErrInvalidQuantity,
	productdomain.ErrInvalidMRP,
	productdomain.ErrInvalidGSTRate,
	productdomain.ErrInvalidCessRate,
	productdomain.ErrInvalidID,
	customerdomain.ErrInvalidName,
	customerdomain.ErrInvalidMobile,
	customerdomain.ErrInvalidEmail,
	customerdomain.ErrInvalidID,
	transactiondomain.ErrInvalidQuantity,
	transactiondomain.ErrInvalidPrice,
	transactiondomain.ErrInvalidID,
	transactiondomain.ErrInvalidProduct,
	transactiondomain.ErrInvalidCustomer,
	transactiondomain.ErrEmptyItems,
	invoicedomain.ErrEmptyBill,
	invoicedomain.ErrInvalidPaymentMethod,
	invoicedomain.ErrInvalidCustomer,
	invoicedomain.ErrInvalidEmail,
	catalogdomain.ErrEmptyWorkbook,
	catalogdomain.ErrInvalidWorkbook,
	catalogdomain.ErrInvalidMapping,
	catalogdomain.ErrMissingFields,
	reportdomain.ErrInvalidReportType,
	authdomain.ErrInvalidUsername,
	authdomain.ErrWeakPassword,
}

var notFoundSentinels = []error{
	productdomain.ErrNotFound,
	customerdomain.ErrNotFound,
	transactiondomain.ErrNotFound,
	transactiondomain.ErrProductNotFound,
	transactiondomain.ErrCustomerNotFound,
	invoicedomain.ErrBillNotFound,
	invoicedomain.ErrCustomerNotFound,
	catalogdomain.ErrNothingToExport,
	gorm.ErrRecordNotFound,
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	var importErr *catalogdomain.ImportError
	if errors.As(err, &importErr) {
		rows := make([]ValidationError, 0, len(importErr.Rows))
		for _, row := range importErr.Rows {
			rows = append(rows, ValidationError{Field: "file", Code: "invalid_row", Message: row})
		}
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation errors found",
			Errors:  rows,
		}
	}

	if sentinel := matchSentinel(err, validationSentinels); sentinel != nil {
		code := sentinel.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code, err),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, authdomain.ErrUserExists):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "too_many_requests",
			Message: "too many requests",
		}
	case errors.Is(err, transactiondomain.ErrInsufficientStock):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "insufficient stock",
		}
	case matchSentinel(err, notFoundSentinels) != nil:
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, invoicedomain.ErrEmailNotConfigured):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// classifyErrorForLog returns the error type and code recorded on request logs.
func classifyErrorForLog(err error) (string, string) {
	_, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	return payload.Type, code
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func matchSentinel(err error, sentinels []error) error {
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string, err error) string {
	if msg := err.Error(); msg != code {
		return msg
	}
	return "invalid value"
}
