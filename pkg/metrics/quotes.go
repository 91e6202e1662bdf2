package metrics

import "github.com/prometheus/client_golang/prometheus"

// QuoteMetrics counts comparison builds, exports and status changes.
type QuoteMetrics struct {
	comparisons prometheus.Counter
	exports     *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	comparisons := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quote_comparisons_total",
		Help:      "Quote comparisons computed.",
	})
	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quote_exports_total",
		Help:      "Comparison exports generated by format.",
	}, []string{"format"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quote_status_changes_total",
		Help:      "Quote status transitions by target status.",
	}, []string{"status"})
	reg.MustRegister(comparisons, exports, transitions)
	return &QuoteMetrics{comparisons: comparisons, exports: exports, transitions: transitions}
}

func (q *QuoteMetrics) IncComparison() {
	if q == nil || q.comparisons == nil {
		return
	}
	q.comparisons.Inc()
}

func (q *QuoteMetrics) IncExport(format string) {
	if q == nil || q.exports == nil {
		return
	}
	q.exports.WithLabelValues(normalizeLabel(format)).Inc()
}

func (q *QuoteMetrics) IncStatusChange(status string) {
	if q == nil || q.transitions == nil {
		return
	}
	q.transitions.WithLabelValues(normalizeLabel(status)).Inc()
}
