package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Requests    *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
	IndexSize   prometheus.Gauge
}

// NewMetrics registers the tagserve collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tagserve_requests_total",
			Help: "Requests handled, by action and reply code",
		}, []string{"action", "code"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tagserve_request_duration_seconds",
			Help:    "Time spent answering a request",
			Buckets: prometheus.ExponentialBuckets(0.000005, 2, 20),
		}, []string{"action"}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "tagserve_cache_hits_total",
			Help: "contains and relative searches answered from the cache",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "tagserve_cache_misses_total",
			Help: "contains and relative searches that walked the index",
		}),
		IndexSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tagserve_index_tags",
			Help: "Number of tags in the index",
		}),
	}
}

// Registry exposes the underlying registry for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ServeMetrics serves /metrics on addr until ctx is done.
func ServeMetrics(ctx context.Context, addr string, m *Metrics) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warnf("Metrics server shutdown: %v", err)
		}
	}()

	log.Debugf("Serving metrics on %s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
