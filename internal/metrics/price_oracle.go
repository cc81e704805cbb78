package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	priceOracleFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "powboard",
		Subsystem: "price_oracle",
		Name:      "fetch_total",
		Help:      "Count of upstream exchange rate fetches.",
	}, []string{"status"})
	priceOracleFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "powboard",
		Subsystem: "price_oracle",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of upstream exchange rate fetches.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
	priceOracleCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "powboard",
		Subsystem: "price_oracle",
		Name:      "cache_lookups_total",
		Help:      "Count of exchange rate lookups by cache result.",
	}, []string{"result"})
	priceOracleRate = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "powboard",
		Subsystem: "price_oracle",
		Name:      "rate",
		Help:      "Last exchange rate received from upstream.",
	})
)

// PriceOracle tracks metrics for the exchange rate oracle.
type PriceOracle struct{}

// NewPriceOracle constructs a metrics collector for the exchange rate oracle.
func NewPriceOracle() *PriceOracle {
	return &PriceOracle{}
}

// ObserveFetch records a single upstream fetch outcome and duration.
func (m PriceOracle) ObserveFetch(err error, started time.Time) {
	status := statusOf(err)
	priceOracleFetchTotal.WithLabelValues(status).Inc()
	priceOracleFetchDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// ObserveCache records whether a lookup was served from the cache.
func (m PriceOracle) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	priceOracleCacheTotal.WithLabelValues(result).Inc()
}

// ObserveRate publishes the latest upstream rate.
func (m PriceOracle) ObserveRate(rate float64) {
	priceOracleRate.Set(rate)
}
