package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

// Metrics holds Prometheus collectors for HTTP traffic and pipeline runs.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	ErrorsTotal      *prometheus.CounterVec
	RunsTotal        *prometheus.CounterVec
	RunDuration      prometheus.Histogram
	TicketsProcessed prometheus.Counter
	LastRunPriority  *prometheus.GaugeVec
	LastRunCategory  *prometheus.GaugeVec
}

// NewMetrics registers and returns metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ticket_triage_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ticket_triage_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~2s
		}, []string{"method", "route"}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ticket_triage_http_errors_total",
			Help: "HTTP error responses by route, method and error code.",
		}, []string{"route", "method", "code"}),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ticket_triage_pipeline_runs_total",
			Help: "Pipeline runs by result.",
		}, []string{"result"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ticket_triage_pipeline_run_duration_seconds",
			Help:    "Pipeline run duration in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms .. ~10s
		}),
		TicketsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ticket_triage_tickets_processed_total",
			Help: "Tickets processed by successful runs.",
		}),
		LastRunPriority: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ticket_triage_last_run_tickets_by_priority",
			Help: "Tickets per priority tier in the last successful run.",
		}, []string{"priority"}),
		LastRunCategory: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ticket_triage_last_run_tickets_by_category",
			Help: "Tickets per category in the last successful run.",
		}, []string{"category"}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.ErrorsTotal,
		m.RunsTotal,
		m.RunDuration,
		m.TicketsProcessed,
		m.LastRunPriority,
		m.LastRunCategory,
	)
	return m
}

// RecordRequest observes one HTTP request.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordError counts an error response.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(route, method, code).Inc()
}

// RecordRun observes a finished pipeline run.
func (m *Metrics) RecordRun(run domain.Run) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(string(run.Status)).Inc()
	m.RunDuration.Observe(run.Duration().Seconds())
	if run.Status != domain.RunStatusSucceeded || run.Summary == nil {
		return
	}
	m.TicketsProcessed.Add(float64(run.TicketCount))

	m.LastRunPriority.Reset()
	for _, p := range []domain.TicketPriority{domain.TicketPriorityLow, domain.TicketPriorityMedium, domain.TicketPriorityHigh} {
		m.LastRunPriority.WithLabelValues(string(p)).Set(float64(domain.Lookup(run.Summary.ByPriority, string(p))))
	}
	m.LastRunCategory.Reset()
	for _, c := range domain.Categories {
		m.LastRunCategory.WithLabelValues(string(c)).Set(float64(domain.Lookup(run.Summary.ByCategory, string(c))))
	}
}
