// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Failure reasons used as the "reason" label on TickFailures.
const (
	ReasonFetch  = "fetch"
	ReasonDecode = "decode"
)

// Metrics bundles every collector the service records to.
// Construct it with New; the zero value is not usable.
type Metrics struct {
	registry *prometheus.Registry

	Ticks           prometheus.Counter
	TickFailures    *prometheus.CounterVec
	BatchRecords    prometheus.Gauge
	LastRefresh     prometheus.Gauge
	UpstreamLatency prometheus.Histogram
}

// New builds the collectors on a private registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "board",
			Name:      "poll_ticks_total",
			Help:      "Poll cycles started.",
		}),
		TickFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "board",
			Name:      "poll_failures_total",
			Help:      "Poll cycles that left the board untouched because of an error.",
		}, []string{"reason"}),
		BatchRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "board",
			Name:      "batch_records",
			Help:      "Number of records in the most recently received batch.",
		}),
		LastRefresh: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "board",
			Name:      "last_refresh_timestamp_seconds",
			Help:      "Unix time the board was last replaced.",
		}),
		UpstreamLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "board",
			Name:      "upstream_fetch_duration_seconds",
			Help:      "Time spent fetching the departures feed.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	m.registry.MustRegister(
		m.Ticks,
		m.TickFailures,
		m.BatchRecords,
		m.LastRefresh,
		m.UpstreamLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
