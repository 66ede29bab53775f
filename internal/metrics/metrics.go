// Package metrics provides Prometheus metrics for the policy navigator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DocumentsIndexedTotal prometheus.Counter
	SearchQueriesTotal    prometheus.Counter
	AdapterFailuresTotal  *prometheus.CounterVec
}

// New creates metrics and registers them on the given registerer. Pass a
// fresh registry in tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "policynav_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "policynav_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		DocumentsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "policynav_documents_indexed_total",
				Help: "Total number of documents added to the store",
			},
		),
		SearchQueriesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "policynav_search_queries_total",
				Help: "Total number of document store searches",
			},
		),
		AdapterFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "policynav_adapter_failures_total",
				Help: "Total number of external adapter failures absorbed at the boundary",
			},
			[]string{"adapter"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DocumentsIndexedTotal,
		m.SearchQueriesTotal,
		m.AdapterFailuresTotal,
	)
	return m
}
