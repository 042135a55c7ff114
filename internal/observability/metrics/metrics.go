package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "saletrack"

// Metrics exposes application-level instruments.
type Metrics struct {
	salesRecorded     *prometheus.CounterVec
	purchasesRecorded *prometheus.CounterVec
	billsAssembled    prometheus.Counter
	importRows        *prometheus.CounterVec
	billDeliveries    *prometheus.CounterVec
}

// New registers the domain instruments on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		salesRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_recorded_total",
			Help:      "Sale records appended, labelled by GST rate.",
		}, []string{"gst_rate"}),
		purchasesRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_recorded_total",
			Help:      "Purchase records appended, labelled by GST rate.",
		}, []string{"gst_rate"}),
		billsAssembled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_assembled_total",
			Help:      "Bills assembled from sale records.",
		}),
		importRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_import_rows_total",
			Help:      "Spreadsheet rows processed by catalog import.",
		}, []string{"result"}),
		billDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bill_deliveries_total",
			Help:      "Bill delivery attempts by channel and result.",
		}, []string{"channel", "result"}),
	}

	for _, c := range []prometheus.Collector{
		m.salesRecorded,
		m.purchasesRecorded,
		m.billsAssembled,
		m.importRows,
		m.billDeliveries,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) RecordSale(gstRate string) {
	if m == nil {
		return
	}
	m.salesRecorded.WithLabelValues(normalizeLabel(gstRate)).Inc()
}

func (m *Metrics) RecordPurchase(gstRate string) {
	if m == nil {
		return
	}
	m.purchasesRecorded.WithLabelValues(normalizeLabel(gstRate)).Inc()
}

func (m *Metrics) RecordBillAssembled() {
	if m == nil {
		return
	}
	m.billsAssembled.Inc()
}

func (m *Metrics) RecordImportRows(result string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.importRows.WithLabelValues(normalizeLabel(result)).Add(float64(n))
}

func (m *Metrics) RecordBillDelivery(channel string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.billDeliveries.WithLabelValues(normalizeLabel(channel), result).Inc()
}

// HTTPMetrics records request counts and latency per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) (*HTTPMetrics, error) {
	h := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status_code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if err := reg.Register(h.requests); err != nil {
		return nil, err
	}
	if err := reg.Register(h.duration); err != nil {
		return nil, err
	}
	return h, nil
}

// GinMiddleware observes every request handled by the engine.
func GinMiddleware(h *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := c.Request.Method
		h.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		h.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return value
}
