package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CronJobMetrics records metadata for scheduled jobs.
type CronJobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewCronJobMetrics registers the cron job metrics on the provided registerer.
func NewCronJobMetrics(reg prometheus.Registerer) *CronJobMetrics {
	if reg == nil {
		return &CronJobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "job_duration_seconds",
		Help:    "Duration of cron jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_success",
		Help: "Successful cron job executions.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_failure",
		Help: "Failed cron job executions.",
	}, []string{"job"})
	reg.MustRegister(duration, success, failure)
	return &CronJobMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
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

// ReminderMetrics exposes the current follow-up backlog per store.
type ReminderMetrics struct {
	due *prometheus.GaugeVec
}

// NewReminderMetrics registers the reminder gauges on the provided registerer.
func NewReminderMetrics(reg prometheus.Registerer) *ReminderMetrics {
	if reg == nil {
		return &ReminderMetrics{}
	}
	due := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "reminders_due",
		Help: "Unsent follow-up reminders due within the digest window, per store.",
	}, []string{"store_id"})
	reg.MustRegister(due)
	return &ReminderMetrics{due: due}
}

// SetDue records the number of due, unsent reminders for a store.
func (r *ReminderMetrics) SetDue(storeID string, count float64) {
	if r == nil || r.due == nil {
		return
	}
	r.due.WithLabelValues(normalizeLabel(storeID)).Set(count)
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
