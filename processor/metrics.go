package processor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments batch processing. A nil *Metrics is a no-op, so
// callers that don't scrape can skip the wiring entirely.
type Metrics struct {
	documents *prometheus.CounterVec
	entities  prometheus.Counter
	duration  prometheus.Histogram
}

// NewMetrics registers the processing metrics with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		documents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notegraph",
			Subsystem: "processor",
			Name:      "documents_total",
			Help:      "Documents processed, by outcome.",
		}, []string{"status"}),
		entities: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "notegraph",
			Subsystem: "processor",
			Name:      "entities_total",
			Help:      "Entities produced across all documents.",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "notegraph",
			Subsystem: "processor",
			Name:      "document_seconds",
			Help:      "Per-document processing time.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
}

// observeDocument records one document outcome.
func (m *Metrics) observeDocument(status string, elapsed time.Duration, entities int) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues(status).Inc()
	m.entities.Add(float64(entities))
	m.duration.Observe(elapsed.Seconds())
}
