package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bidboard"

// CronJobMetrics records metadata for scheduled jobs.
type CronJobMetrics struct {
	duration   *prometheus.HistogramVec
	success    *prometheus.CounterVec
	failure    *prometheus.CounterVec
	overdue    prometheus.Gauge
	validities *prometheus.GaugeVec
}

// NewCronJobMetrics registers the cron job metrics on the provided registerer.
func NewCronJobMetrics(reg prometheus.Registerer) *CronJobMetrics {
	if reg == nil {
		return &CronJobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "job_duration_seconds",
		Help:      "Duration of cron jobs in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_success_total",
		Help:      "Successful cron job executions.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_failure_total",
		Help:      "Failed cron job executions.",
	}, []string{"job"})
	overdue := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rfqs_overdue",
		Help:      "RFQs sent without a vendor response past the follow-up window.",
	})
	validities := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "quotes_validity",
		Help:      "Pending quotes bucketed by validity window.",
	}, []string{"window"})
	reg.MustRegister(duration, success, failure, overdue, validities)
	return &CronJobMetrics{
		duration:   duration,
		success:    success,
		failure:    failure,
		overdue:    overdue,
		validities: validities,
	}
}

// ObserveDuration records the duration for the named job.
func (c *CronJobMetrics) ObserveDuration(job string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named job.
func (c *CronJobMetrics) IncSuccess(job string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncFailure increments the failure counter for the named job.
func (c *CronJobMetrics) IncFailure(job string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(job)).Inc()
}

// SetOverdueRFQs publishes the latest overdue RFQ count.
func (c *CronJobMetrics) SetOverdueRFQs(count int) {
	if c == nil || c.overdue == nil {
		return
	}
	c.overdue.Set(float64(count))
}

// SetQuoteValidity publishes the count of pending quotes for a window
// ("expired" or "expiring").
func (c *CronJobMetrics) SetQuoteValidity(window string, count int) {
	if c == nil || c.validities == nil {
		return
	}
	c.validities.WithLabelValues(normalizeLabel(window)).Set(float64(count))
}

func normalizeLabel(job string) string {
	if job == "" {
		return "unknown"
	}
	return job
}
