package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSaleCountsByRate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.RecordSale("18")
	m.RecordSale("18")
	m.RecordSale("")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.salesRecorded.WithLabelValues("18")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.salesRecorded.WithLabelValues("unknown")))
}

func TestRecordBillDeliveryResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.RecordBillDelivery("email", nil)
	m.RecordBillDelivery("email", errors.New("smtp down"))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.billDeliveries.WithLabelValues("email", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.billDeliveries.WithLabelValues("email", "error")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordSale("5")
	m.RecordPurchase("5")
	m.RecordBillAssembled()
	m.RecordImportRows("created", 3)
	m.RecordBillDelivery("email", nil)
}

func TestNewRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}
