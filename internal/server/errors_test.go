package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	authdomain "github.com/smallbiznis/saletrack/internal/auth/domain"
	catalogdomain "github.com/smallbiznis/saletrack/internal/catalog/domain"
	invoicedomain "github.com/smallbiznis/saletrack/internal/invoice/domain"
	productdomain "github.com/smallbiznis/saletrack/internal/product/domain"
	transactiondomain "github.com/smallbiznis/saletrack/internal/transaction/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"bad credentials", authdomain.ErrInvalidCredentials, http.StatusUnauthorized, "unauthorized"},
		{"duplicate user", authdomain.ErrUserExists, http.StatusConflict, "conflict"},
		{"throttled", ErrTooManyRequests, http.StatusTooManyRequests, "too_many_requests"},
		{"oversell", fmt.Errorf("record sale: %w", transactiondomain.ErrInsufficientStock), http.StatusConflict, "conflict"},
		{"missing bill", invoicedomain.ErrBillNotFound, http.StatusNotFound, "not_found"},
		{"email off", invoicedomain.ErrEmailNotConfigured, http.StatusServiceUnavailable, "service_unavailable"},
		{"unknown", errors.New("disk full"), http.StatusInternalServerError, "internal_error"},
		{"nil", nil, http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.kind, payload.Type)
		})
	}
}

func TestMapErrorValidation(t *testing.T) {
	status, payload := mapError(fmt.Errorf("create: %w", productdomain.ErrInvalidPrice))
	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "price", payload.Errors[0].Field)
	assert.Equal(t, "invalid_price", payload.Errors[0].Code)
	assert.Equal(t, "create: invalid_price", payload.Errors[0].Message)

	status, payload = mapError(invalidRequestError())
	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "request", payload.Errors[0].Field)

	status, payload = mapError(&catalogdomain.ImportError{Rows: []string{"row 3: invalid_price"}})
	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "invalid_row", payload.Errors[0].Code)
}
