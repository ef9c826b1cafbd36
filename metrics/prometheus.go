package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// FarmChain Metrics Collector
// Provides metrics for monitoring the confidential farming ledger

var (
	// Singleton collector
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds all FarmChain metrics
type Collector struct {
	// Pool metrics
	PoolsCreated prometheus.Counter
	PoolsActive  prometheus.Gauge
	PoolFarmers  *prometheus.GaugeVec

	// Ledger operation metrics
	DepositsTotal      *prometheus.CounterVec
	AccrualsTotal      *prometheus.CounterVec
	ClaimsTotal        *prometheus.CounterVec
	WithdrawalsTotal   *prometheus.CounterVec
	OwnershipTransfers prometheus.Counter
	LedgerEventsTotal  *prometheus.CounterVec

	// WebSocket metrics
	WSConnectionsActive prometheus.Gauge
	WSMessagesTotal     *prometheus.CounterVec

	// API metrics
	APIRequestsTotal  *prometheus.CounterVec
	APIRequestLatency *prometheus.HistogramVec
	APIErrorsTotal    *prometheus.CounterVec
	RateLimitHits     *prometheus.CounterVec
}

// GetCollector returns the singleton metrics collector
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

// newCollector creates a new metrics collector
func newCollector() *Collector {
	c := &Collector{}

	// Pool metrics
	c.PoolsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "farmchain",
			Subsystem: "pools",
			Name:      "created_total",
			Help:      "Total number of pools created",
		},
	)

	c.PoolsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "farmchain",
			Subsystem: "pools",
			Name:      "active",
			Help:      "Number of pools currently accepting deposits",
		},
	)

	c.PoolFarmers = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "farmchain",
			Subsystem: "pools",
			Name:      "farmers",
			Help:      "Number of open positions per pool",
		},
		[]string{"pool_id"},
	)

	// Ledger operation metrics
	c.DepositsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "farmchain",
			Subsystem: "ledger",
			Name:      "deposits_total",
			Help:      "Total number of encrypted deposits recorded",
		},
		[]string{"pool_id"},
	)

	c.AccrualsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "farmchain",
			Subsystem: "ledger",
			Name:      "accruals_total",
			Help:      "Total number of encrypted reward accruals recorded",
		},
		[]string{"pool_id"},
	)

	c.ClaimsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "farmchain",
			Subsystem: "ledger",
			Name:      "claims_total",
			Help:      "Total number of encrypted claims recorded",
		},
		[]string{"pool_id"},
	)

	c.WithdrawalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "farmchain",
			Subsystem: "ledger",
			Name:      "withdrawals_total",
			Help:      "Total number of position withdrawals recorded",
		},
		[]string{"pool_id"},
	)

	c.OwnershipTransfers = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "farmchain",
			Subsystem: "ledger",
			Name:      "ownership_transfers_total",
			Help:      "Total number of admin ownership transfers",
		},
	)

	c.LedgerEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "farmchain",
			Subsystem: "ledger",
			Name:      "events_total",
			Help:      "Total number of ledger events emitted by type",
		},
		[]string{"type"},
	)

	// WebSocket metrics
	c.WSConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "farmchain",
			Subsystem: "websocket",
			Name:      "connections_active",
			Help:      "Number of active WebSocket connections",
		},
	)

	c.WSMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "farmchain",
			Subsystem: "websocket",
			Name:      "messages_total",
			Help:      "Total number of WebSocket messages sent by channel",
		},
		[]string{"channel"},
	)

	// API metrics
	c.APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "farmchain",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	c.APIRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "farmchain",
			Subsystem: "api",
			Name:      "request_latency_ms",
			Help:      "API request latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"method", "path"},
	)

	c.APIErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "farmchain",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Total number of API error responses",
		},
		[]string{"path", "status"},
	)

	c.RateLimitHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "farmchain",
			Subsystem: "api",
			Name:      "rate_limit_hits_total",
			Help:      "Total number of rate limited requests",
		},
		[]string{"limit_type"},
	)

	registerAll(c)
	return c
}

// registerAll registers all metrics with the default registry
func registerAll(c *Collector) {
	prometheus.MustRegister(c.PoolsCreated)
	prometheus.MustRegister(c.PoolsActive)
	prometheus.MustRegister(c.PoolFarmers)

	prometheus.MustRegister(c.DepositsTotal)
	prometheus.MustRegister(c.AccrualsTotal)
	prometheus.MustRegister(c.ClaimsTotal)
	prometheus.MustRegister(c.WithdrawalsTotal)
	prometheus.MustRegister(c.OwnershipTransfers)
	prometheus.MustRegister(c.LedgerEventsTotal)

	prometheus.MustRegister(c.WSConnectionsActive)
	prometheus.MustRegister(c.WSMessagesTotal)

	prometheus.MustRegister(c.APIRequestsTotal)
	prometheus.MustRegister(c.APIRequestLatency)
	prometheus.MustRegister(c.APIErrorsTotal)
	prometheus.MustRegister(c.RateLimitHits)
}

// ============ Recording Helpers ============

// RecordLedgerEvent records a ledger event by type. Pool scoped
// counters are bumped for the event types that carry a pool id.
func (c *Collector) RecordLedgerEvent(eventType, poolID string) {
	c.LedgerEventsTotal.WithLabelValues(eventType).Inc()

	switch eventType {
	case "pool_created":
		c.PoolsCreated.Inc()
		c.PoolsActive.Inc()
	case "deposited_encrypted":
		c.DepositsTotal.WithLabelValues(poolID).Inc()
	case "accrued_encrypted":
		c.AccrualsTotal.WithLabelValues(poolID).Inc()
	case "claimed_encrypted":
		c.ClaimsTotal.WithLabelValues(poolID).Inc()
	case "withdrawn_encrypted":
		c.WithdrawalsTotal.WithLabelValues(poolID).Inc()
	case "ownership_transferred":
		c.OwnershipTransfers.Inc()
	}
}

// SetPoolFarmers sets the open position gauge for a pool
func (c *Collector) SetPoolFarmers(poolID string, farmers uint64) {
	c.PoolFarmers.WithLabelValues(poolID).Set(float64(farmers))
}

// SetPoolsActive sets the active pool gauge
func (c *Collector) SetPoolsActive(count int) {
	c.PoolsActive.Set(float64(count))
}

// RecordAPIRequest records an API request
func (c *Collector) RecordAPIRequest(method, path, status string, latencyMs float64) {
	c.APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	c.APIRequestLatency.WithLabelValues(method, path).Observe(latencyMs)
	if status[0] == '4' || status[0] == '5' {
		c.APIErrorsTotal.WithLabelValues(path, status).Inc()
	}
}

// RecordRateLimitHit records a rate limited request
func (c *Collector) RecordRateLimitHit(limitType string) {
	c.RateLimitHits.WithLabelValues(limitType).Inc()
}

// RecordWSConnection records WebSocket connection changes
func (c *Collector) RecordWSConnection(delta int) {
	c.WSConnectionsActive.Add(float64(delta))
}

// RecordWSMessage records a WebSocket message
func (c *Collector) RecordWSMessage(channel string) {
	c.WSMessagesTotal.WithLabelValues(channel).Inc()
}

// ============ HTTP Handler ============

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for measuring latency
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ElapsedMs returns the elapsed time in milliseconds
func (t *Timer) ElapsedMs() float64 {
	return float64(time.Since(t.start).Microseconds()) / 1000.0
}
