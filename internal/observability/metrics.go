package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
	httpErrorsTotal       *prometheus.CounterVec
	dashboardActionsTotal *prometheus.CounterVec
	dashboardCacheLookups *prometheus.CounterVec
	taskAssignmentsTotal  *prometheus.CounterVec
	streamClientsActive   prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used by the API and the dashboard services.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kidtask_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kidtask_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kidtask_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		dashboardActionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_actions_total",
			Help: "Total number of dashboard actions reduced, by role and action.",
		}, []string{"role", "action"})

		dashboardCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_cache_lookups_total",
			Help: "Dashboard render cache lookups, by role and result.",
		}, []string{"role", "result"})

		taskAssignmentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_task_assignments_total",
			Help: "Task assignment submissions, by role and publish outcome.",
		}, []string{"role", "outcome"})

		streamClientsActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_stream_clients_active",
			Help: "Number of clients following a board event stream.",
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			dashboardActionsTotal,
			dashboardCacheLookups,
			taskAssignmentsTotal,
			streamClientsActive,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for API error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// DashboardActions counts reduced actions.
func DashboardActions() *prometheus.CounterVec {
	RegisterMetrics()
	return dashboardActionsTotal
}

// DashboardCacheLookups counts render cache hits and misses.
func DashboardCacheLookups() *prometheus.CounterVec {
	RegisterMetrics()
	return dashboardCacheLookups
}

// TaskAssignments counts task form submissions handed to the publisher.
func TaskAssignments() *prometheus.CounterVec {
	RegisterMetrics()
	return taskAssignmentsTotal
}

// StreamClientsActive exposes the gauge of connected board event streams.
func StreamClientsActive() prometheus.Gauge {
	RegisterMetrics()
	return streamClientsActive
}
