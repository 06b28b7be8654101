// Package metrics exposes Prometheus instrumentation for the service.
//
// Metrics exposed:
//   - pageloadtime_fetch_seconds: histogram of outbound timing requests by outcome
//   - pageloadtime_fetch_failures_total: counter of failed outbound requests by DNS class
//   - pageloadtime_store_operations_total: counter of store calls by op and result
//   - pageloadtime_http_requests_total: counter of served requests by route and status
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pageloadtime"

type Metrics struct {
	registry *prometheus.Registry

	FetchSeconds  *prometheus.HistogramVec
	FetchFailures *prometheus.CounterVec
	StoreOps      *prometheus.CounterVec
	HTTPRequests  *prometheus.CounterVec
}

// New builds collectors on a private registry so tests can create as many as they like.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: reg,
		FetchSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_seconds",
			Help:      "Elapsed time of outbound page load requests",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"outcome"}),
		FetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_failures_total",
			Help:      "Outbound page load requests that failed, by DNS diagnosis",
		}, []string{"dns_class"}),
		StoreOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Page record store calls by operation and result",
		}, []string{"op", "result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Served HTTP requests by route pattern and status code",
		}, []string{"route", "status"}),
	}
	reg.MustRegister(m.FetchSeconds, m.FetchFailures, m.StoreOps, m.HTTPRequests)
	return m
}

// ObserveFetch records one outbound request. A nil receiver is a no-op.
func (m *Metrics) ObserveFetch(seconds float64, failed bool, dnsClass string) {
	if m == nil {
		return
	}
	outcome := "ok"
	if failed {
		outcome = "error"
		m.FetchFailures.WithLabelValues(dnsClass).Inc()
	}
	m.FetchSeconds.WithLabelValues(outcome).Observe(seconds)
}

// ObserveStore records one store call; result is "ok", "not_found" or "error".
func (m *Metrics) ObserveStore(op, result string) {
	if m == nil {
		return
	}
	m.StoreOps.WithLabelValues(op, result).Inc()
}

func (m *Metrics) ObserveRequest(route string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// Handler serves the private registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
