package obs

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	TasksPerformed  prometheus.Counter
	StatesCollected prometheus.Counter
	Workers         prometheus.Gauge
	Aggregators     prometheus.Gauge
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TasksPerformed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "worker_tasks_performed_total",
			Help: "Total number of tasks performed by workers",
		}),
		StatesCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aggregator_states_collected_total",
			Help: "Total number of values collected by aggregators",
		}),
		Workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "workers_registered",
			Help: "Number of registered workers",
		}),
		Aggregators: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "aggregators_registered",
			Help: "Number of registered aggregators",
		}),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	reg.MustRegister(
		m.TasksPerformed,
		m.StatesCollected,
		m.Workers,
		m.Aggregators,
		m.Requests,
		m.RequestDuration,
	)
	return m
}
