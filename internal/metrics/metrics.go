// Package metrics provides Prometheus metrics for observability.
// Metrics are organized by domain: HTTP requests, the content store, data sources and the database pool.
package metrics

import (
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "content_hub"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultInvalid = "invalid"
)

var (
	// HTTP metrics - track request volume and latency
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	// Store metrics - size of the in-memory collection
	StoreItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "items",
			Help:      "Number of content items held in the store by status",
		},
		[]string{"status"},
	)

	// Source metrics - calls to the data access layer
	SourceOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "operations_total",
			Help:      "Total number of data source operations by source, operation, and result",
		},
		[]string{"source", "operation", "result"},
	)

	SourceOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "operation_duration_seconds",
			Help:      "Data source operation duration in seconds",
			Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"source", "operation"},
	)

	// Submission metrics - content requests by outcome
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "submissions_total",
			Help:      "Total number of content request submissions by result",
		},
		[]string{"result"},
	)

	RefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "refreshes_total",
			Help:      "Total number of collection refreshes by trigger and result",
		},
		[]string{"trigger", "result"},
	)

	// Transfer metrics - bulk import and export
	TransferRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transfer",
			Name:      "records_total",
			Help:      "Total number of records imported or exported by direction, format, and result",
		},
		[]string{"direction", "format", "result"},
	)

	// Database metrics - postgres pool state
	DBConnectionPoolSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "pool_connections",
			Help:      "Database connection pool stats",
		},
		[]string{"state"},
	)
)

// ObserveSourceOperation records the outcome and latency of one data source call.
func ObserveSourceOperation(source, operation string, err error, durationSeconds float64) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	SourceOperationsTotal.WithLabelValues(source, operation, result).Inc()
	SourceOperationDuration.WithLabelValues(source, operation).Observe(durationSeconds)
}

// ObserveSubmission records a content request submission outcome.
func ObserveSubmission(result string) {
	SubmissionsTotal.WithLabelValues(result).Inc()
}

// ObserveRefresh records a collection refresh outcome.
func ObserveRefresh(trigger string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	RefreshesTotal.WithLabelValues(trigger, result).Inc()
}

// ObserveTransfer records the records moved by one import or export.
func ObserveTransfer(direction, format string, succeeded, failed int) {
	if succeeded > 0 {
		TransferRecordsTotal.WithLabelValues(direction, format, ResultSuccess).Add(float64(succeeded))
	}
	if failed > 0 {
		TransferRecordsTotal.WithLabelValues(direction, format, ResultInvalid).Add(float64(failed))
	}
}

// SetStoreItems publishes the per-status item counts of the store.
func SetStoreItems(requested, inProgress, published int) {
	StoreItems.WithLabelValues("requested").Set(float64(requested))
	StoreItems.WithLabelValues("in-progress").Set(float64(inProgress))
	StoreItems.WithLabelValues("published").Set(float64(published))
}

// PoolStats is an interface for getting pool statistics
type PoolStats interface {
	TotalConns() int32
	IdleConns() int32
	AcquiredConns() int32
}

// PoolStatsProvider is an interface for providing pool stats
type PoolStatsProvider interface {
	Stat() PoolStats
}

type pgxPoolAdapter struct {
	pool *pgxpool.Pool
}

func (a *pgxPoolAdapter) Stat() PoolStats {
	return a.pool.Stat()
}

// PoolStatsCollector collects database pool statistics periodically
type PoolStatsCollector struct {
	provider PoolStatsProvider
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewPoolStatsCollector creates a new pool stats collector for a pgx pool
func NewPoolStatsCollector(pool *pgxpool.Pool) *PoolStatsCollector {
	return NewPoolStatsCollectorWithProvider(&pgxPoolAdapter{pool: pool})
}

// NewPoolStatsCollectorWithProvider creates a new pool stats collector with a custom provider
func NewPoolStatsCollectorWithProvider(provider PoolStatsProvider) *PoolStatsCollector {
	return &PoolStatsCollector{
		provider: provider,
		stopChan: make(chan struct{}),
	}
}

// Start begins collecting pool stats every interval
func (c *PoolStatsCollector) Start(interval time.Duration) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		c.collect()

		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopChan:
				return
			}
		}
	}()
}

func (c *PoolStatsCollector) collect() {
	stats := c.provider.Stat()
	DBConnectionPoolSize.WithLabelValues("total").Set(float64(stats.TotalConns()))
	DBConnectionPoolSize.WithLabelValues("idle").Set(float64(stats.IdleConns()))
	DBConnectionPoolSize.WithLabelValues("in_use").Set(float64(stats.AcquiredConns()))
}

// Stop stops the pool stats collector. It is safe to call more than once.
func (c *PoolStatsCollector) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
	c.wg.Wait()
}

// Timer is a helper for measuring operation duration
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer starting now
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Seconds returns the elapsed time in seconds.
func (t *Timer) Seconds() float64 {
	return time.Since(t.start).Seconds()
}

// ObserveDuration records the elapsed time since the timer was created
func (t *Timer) ObserveDuration(observer prometheus.Observer) {
	observer.Observe(t.Seconds())
}
