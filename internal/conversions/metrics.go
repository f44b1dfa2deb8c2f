package conversions

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	queueLength prometheus.Gauge
	enqueued    *prometheus.CounterVec
	finished    *prometheus.CounterVec
	wait        prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		queueLength: f.NewGauge(prometheus.GaugeOpts{
			Name: "telegisto_queue_length",
			Help: "Jobs currently held by the conversion queue.",
		}),
		enqueued: f.NewCounterVec(prometheus.CounterOpts{
			Name: "telegisto_jobs_enqueued_total",
			Help: "Jobs accepted into the queue.",
		}, []string{"platform"}),
		finished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "telegisto_jobs_finished_total",
			Help: "Jobs that left the processing lane.",
		}, []string{"status"}),
		wait: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "telegisto_job_wait_seconds",
			Help:    "Time between enqueue and start of processing.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
}

// методы безопасны для nil: метрики можно не подключать

func (m *Metrics) setLength(n int) {
	if m != nil {
		m.queueLength.Set(float64(n))
	}
}

func (m *Metrics) jobEnqueued(platform string) {
	if m != nil {
		m.enqueued.WithLabelValues(platform).Inc()
	}
}

func (m *Metrics) jobFinished(status Status) {
	if m != nil {
		m.finished.WithLabelValues(string(status)).Inc()
	}
}

func (m *Metrics) jobStarted(wait time.Duration) {
	if m != nil {
		m.wait.Observe(wait.Seconds())
	}
}
