package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	clickhouseRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "powboard",
		Subsystem: "clickhouse_repository",
		Name:      "operations_total",
		Help:      "Count of repository operations.",
	}, []string{"operation", "status"})
	clickhouseRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "powboard",
		Subsystem: "clickhouse_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"operation", "status"})
	clickhouseRepositoryRowsReturned = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "powboard",
		Subsystem: "clickhouse_repository",
		Name:      "rows_returned",
		Help:      "Number of rows returned by listing operations.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8), // 1..16384
	}, []string{"operation"})
)

// ClickhouseRepository tracks metrics for ClickHouse repository operations.
type ClickhouseRepository struct{}

// NewClickhouseRepository creates a ClickhouseRepository metrics collector.
func NewClickhouseRepository() *ClickhouseRepository {
	return &ClickhouseRepository{}
}

// Observe records duration and status of a repository operation.
func (m ClickhouseRepository) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	clickhouseRepositoryRequestsTotal.WithLabelValues(operation, status).Inc()
	clickhouseRepositoryRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

// ObserveRows records how many rows a listing operation returned.
func (m ClickhouseRepository) ObserveRows(operation string, rows int) {
	clickhouseRepositoryRowsReturned.WithLabelValues(operation).Observe(float64(rows))
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
