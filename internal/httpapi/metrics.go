package httpapi

import (
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mis",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mis",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	transactionsImported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mis",
			Name:      "transactions_imported_total",
			Help:      "Transactions created by journal and sales imports",
		},
		[]string{"source"},
	)
	// vouchersSkipped tracks the receipt-voucher heuristic so operators
	// can audit how much of the journal it discarded.
	vouchersSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mis",
			Name:      "vouchers_skipped_total",
			Help:      "Vouchers discarded by the credit-first-row heuristic or yielding no expense lines",
		},
	)
	rulesRejected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mis",
			Name:      "rules_rejected",
			Help:      "Rule patterns that failed to compile and are inert",
		},
	)
)

func metricsHandler() http.Handler {
	return promhttp.Handler()
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		status := strconv.Itoa(ww.Status())
		httpRequestsTotal.WithLabelValues(r.Method, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, status).Observe(time.Since(start).Seconds())
	})
}
