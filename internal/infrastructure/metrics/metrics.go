// Package metrics exposes Prometheus collectors for HTTP traffic, quiz
// session lifecycle transitions and housekeeping jobs.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	vo "github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession/valueobjects"
)

const namespace = "medquiz"

type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	sessionTransitions *prometheus.CounterVec
	secondaryFailures  *prometheus.CounterVec
	authEvictions      prometheus.Counter

	jobRuns      *prometheus.CounterVec
	jobProcessed *prometheus.CounterVec
	jobDuration  *prometheus.HistogramVec
}

// New registers every collector on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		sessionTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quiz_session",
			Name:      "transitions_total",
			Help:      "Quiz session status transitions.",
		}, []string{"from", "to"}),
		secondaryFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quiz_session",
			Name:      "secondary_write_failures_total",
			Help:      "Best-effort writes that failed and were reported as degraded.",
		}, []string{"step"}),
		authEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth_session",
			Name:      "evictions_total",
			Help:      "Auth sessions deactivated by the concurrent session limit.",
		}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "job",
			Name:      "runs_total",
			Help:      "Housekeeping job runs by outcome.",
		}, []string{"job", "outcome"}),
		jobProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "job",
			Name:      "processed_items_total",
			Help:      "Items processed by housekeeping jobs.",
		}, []string{"job"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "job",
			Name:      "duration_seconds",
			Help:      "Housekeeping job run time.",
			Buckets:   []float64{0.01, 0.05, 0.25, 1, 5, 30, 120},
		}, []string{"job"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.sessionTransitions,
		m.secondaryFailures,
		m.authEvictions,
		m.jobRuns,
		m.jobProcessed,
		m.jobDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) SessionTransitioned(from, to vo.SessionStatus) {
	m.sessionTransitions.WithLabelValues(string(from), string(to)).Inc()
}

func (m *Metrics) SecondaryWriteFailed(step string) {
	m.secondaryFailures.WithLabelValues(step).Inc()
}

func (m *Metrics) AuthSessionsEvicted(n int) {
	if n > 0 {
		m.authEvictions.Add(float64(n))
	}
}

func (m *Metrics) JobRun(job string, processed int, err error, elapsed time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.jobRuns.WithLabelValues(job, outcome).Inc()
	if processed > 0 {
		m.jobProcessed.WithLabelValues(job).Add(float64(processed))
	}
	m.jobDuration.WithLabelValues(job).Observe(elapsed.Seconds())
}
