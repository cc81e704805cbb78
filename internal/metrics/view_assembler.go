package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	viewAssembleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "powboard",
		Subsystem: "view_assembler",
		Name:      "assemble_total",
		Help:      "Count of assembled view models.",
	}, []string{"view", "status"})
	viewAssembleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "powboard",
		Subsystem: "view_assembler",
		Name:      "assemble_duration_seconds",
		Help:      "Duration of assembling a view model.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"view", "status"})
)

// ViewAssembler tracks metrics for view model assembly.
type ViewAssembler struct{}

// NewViewAssembler constructs a metrics collector for view assembly.
func NewViewAssembler() *ViewAssembler {
	return &ViewAssembler{}
}

// Observe records duration and status of assembling one view.
func (m ViewAssembler) Observe(view string, err error, started time.Time) {
	status := statusOf(err)
	viewAssembleTotal.WithLabelValues(view, status).Inc()
	viewAssembleDuration.WithLabelValues(view, status).Observe(time.Since(started).Seconds())
}
