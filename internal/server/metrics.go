// Package server exposes application metrics over HTTP for Prometheus
// scraping. The endpoint is optional and only started when the user passes
// --metrics-addr.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/sqrace/internal/logging"
)

// shutdownGrace bounds how long an in-flight scrape may delay shutdown.
const shutdownGrace = 2 * time.Second

// Metrics serves the /metrics endpoint for a registry, tracking its own
// request counters alongside the application collectors.
type Metrics struct {
	handler        http.Handler
	activeRequests prometheus.Gauge
	requestsTotal  prometheus.Counter
}

// NewMetrics creates the metrics endpoint for the given registry.
// The endpoint's own request counters are registered into the same registry
// so they appear in the exposition output.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sqrace_active_requests",
			Help: "Number of metrics requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sqrace_requests_total",
			Help: "Total metrics requests served.",
		}),
	}
	registry.MustRegister(m.activeRequests, m.requestsTotal)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests notes the start of a request.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests notes the end of a request.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// WritePrometheus serves one exposition request, maintaining the request
// counters around the underlying promhttp handler.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.IncrementActiveRequests()
	defer m.DecrementActiveRequests()
	m.requestsTotal.Inc()
	m.handler.ServeHTTP(w, r)
}

// Handler returns the routed endpoint with security headers applied.
func (m *Metrics) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", m.WritePrometheus)
	return securityHeaders(mux)
}

// securityHeaders sets conservative response headers on every reply.
// The endpoint serves plain text only, so framing and sniffing are denied.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// Serve runs the metrics endpoint on addr until the context is canceled,
// then shuts down gracefully. Intended to be run in its own goroutine.
func Serve(ctx context.Context, addr string, m *Metrics, logger logging.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics endpoint listening", logging.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
