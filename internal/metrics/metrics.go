package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"wedding-registry-go/internal/domain/guests"
)

// Metrics holds the registry's Prometheus collectors. It implements
// guests.Recorder.
type Metrics struct {
	Lookups             *prometheus.CounterVec
	RSVPRows            *prometheus.CounterVec
	RSVPSkips           *prometheus.CounterVec
	NotificationsFailed *prometheus.CounterVec
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
}

var _ guests.Recorder = (*Metrics)(nil)

// New registers every collector on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wedding_guest_lookups_total",
			Help: "Guest name lookups by outcome",
		}, []string{"outcome"}), // outcome: exact, partial, ambiguous, miss

		RSVPRows: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wedding_rsvp_rows_written_total",
			Help: "Guest rows written by RSVP submissions, by submitted response",
		}, []string{"response"}),

		RSVPSkips: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wedding_rsvp_entries_skipped_total",
			Help: "Family RSVP entries dropped, by reason",
		}, []string{"reason"}),

		NotificationsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wedding_notifications_failed_total",
			Help: "RSVP emails that could not be delivered",
		}, []string{"kind"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wedding_http_requests_total",
			Help: "HTTP requests by route pattern, method and status",
		}, []string{"route", "method", "status"}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wedding_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"route", "method"}),
	}
}

func (m *Metrics) LookupResolved(pass guests.MatchPass, ambiguous bool) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(string(pass)).Inc()
	if ambiguous {
		m.Lookups.WithLabelValues("ambiguous").Inc()
	}
}

func (m *Metrics) LookupMissed() {
	if m != nil {
		m.Lookups.WithLabelValues("miss").Inc()
	}
}

func (m *Metrics) RSVPWritten(response guests.Response, rows int) {
	if m != nil {
		m.RSVPRows.WithLabelValues(string(response)).Add(float64(rows))
	}
}

func (m *Metrics) RSVPSkipped(reason guests.SkipReason) {
	if m != nil {
		m.RSVPSkips.WithLabelValues(string(reason)).Inc()
	}
}

func (m *Metrics) NotificationFailed(kind string) {
	if m != nil {
		m.NotificationsFailed.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route, method).Observe(d.Seconds())
}
