package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus metric names.
const (
	MetricOperationsTotal        = "ledger_account_operations_total"
	MetricRollupDurationSeconds  = "ledger_tree_rollup_duration_seconds"
	MetricRollupAccounts         = "ledger_tree_rollup_accounts"
	MetricCodeRetriesTotal       = "ledger_code_assignment_retries_total"
	MetricHTTPRequestsTotal      = "ledger_http_requests_total"
	MetricHTTPRequestDurationSec = "ledger_http_request_duration_seconds"
)

// OutcomeOK labels a successful operation
const OutcomeOK = "ok"

// LedgerMetrics collects chart-of-accounts metrics on a private registry.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type LedgerMetrics struct {
	registry *prometheus.Registry

	operationsTotal *prometheus.CounterVec
	rollupDuration  prometheus.Histogram
	rollupAccounts  prometheus.Gauge
	codeRetries     prometheus.Counter
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewLedgerMetrics creates the collectors and registers them together with
// the Go runtime and process collectors.
func NewLedgerMetrics() *LedgerMetrics {
	registry := prometheus.NewRegistry()

	m := &LedgerMetrics{
		registry: registry,
		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricOperationsTotal,
			Help: "Chart-of-accounts operations by outcome",
		}, []string{"operation", "outcome"}),
		rollupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricRollupDurationSeconds,
			Help:    "Time spent building and aggregating the account forest",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		rollupAccounts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricRollupAccounts,
			Help: "Number of accounts in the last aggregated forest",
		}),
		codeRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricCodeRetriesTotal,
			Help: "Transactions retried after a unique constraint violation",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricHTTPRequestsTotal,
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricHTTPRequestDurationSec,
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.operationsTotal,
		m.rollupDuration,
		m.rollupAccounts,
		m.codeRetries,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// ObserveOperation counts one service call labelled by its error code
func (m *LedgerMetrics) ObserveOperation(operation string, err error) {
	m.operationsTotal.WithLabelValues(operation, Outcome(err)).Inc()
}

// ObserveRollup records one forest aggregation
func (m *LedgerMetrics) ObserveRollup(duration time.Duration, accounts int) {
	m.rollupDuration.Observe(duration.Seconds())
	m.rollupAccounts.Set(float64(accounts))
}

// IncCodeRetry counts a retried transaction
func (m *LedgerMetrics) IncCodeRetry() {
	m.codeRetries.Inc()
}

// ObserveHTTPRequest records one served request
func (m *LedgerMetrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler returns the scrape endpoint for this registry
func (m *LedgerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry
func (m *LedgerMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Outcome maps an error to a low-cardinality label value
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if domainErr, ok := shared.AsDomainError(err); ok {
		return domainErr.Code
	}
	return "INTERNAL_ERROR"
}
