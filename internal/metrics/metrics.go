package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lumen"

// Metrics owns a private registry so that several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	OpenStreams     prometheus.Gauge
	Recipients      prometheus.Gauge
	Delivered       prometheus.Counter
	Dropped         prometheus.Counter
	Notifications   *prometheus.CounterVec
	KeepAlives      prometheus.Counter
	StreamDurations prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		OpenStreams: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "open_streams",
			Help:      "Currently registered stream channels.",
		}),
		Recipients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "recipients",
			Help:      "Recipients with at least one open stream.",
		}),
		Delivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "delivered_total",
			Help:      "Payloads enqueued onto a channel.",
		}),
		Dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "dropped_total",
			Help:      "Published payloads with no open channel for the recipient.",
		}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "notifications_total",
			Help:      "create_notification outcomes by type.",
		}, []string{"type", "outcome"}),
		KeepAlives: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "keepalives_total",
			Help:      "Keep-alive frames written.",
		}),
		StreamDurations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "session_seconds",
			Help:      "Lifetime of stream sessions.",
			Buckets:   []float64{1, 15, 60, 300, 900, 3600, 14400},
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.OpenStreams,
		m.Recipients,
		m.Delivered,
		m.Dropped,
		m.Notifications,
		m.KeepAlives,
		m.StreamDurations,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
