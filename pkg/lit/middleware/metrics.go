package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/toyz/lit/pkg/lit"
)

// Metrics records request counts and latencies
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	inflight prometheus.Gauge
	gatherer prometheus.Gatherer
}

// NewMetrics registers the lit request collectors on reg. A nil reg uses a
// fresh registry.
func NewMetrics(reg *prometheus.Registry) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lit",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method and status.",
		}, []string{"method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lit",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lit",
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
		gatherer: reg,
	}

	for _, c := range []prometheus.Collector{m.requests, m.latency, m.inflight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Middleware observes every request passing through it
func (m *Metrics) Middleware() lit.MiddlewareFunc {
	return func(next lit.HandlerFunc) lit.HandlerFunc {
		return func(ctx lit.RequestContext) error {
			m.inflight.Inc()
			defer m.inflight.Dec()

			start := time.Now()
			err := lit.HandleError(ctx, next(ctx))

			method := ctx.Method()
			m.requests.WithLabelValues(method, strconv.Itoa(ctx.Response().Status())).Inc()
			m.latency.WithLabelValues(method).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
