package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"wedding-registry-go/internal/domain/guests"
)

func TestRecorderCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.LookupResolved(guests.PassExact, false)
	m.LookupResolved(guests.PassPartial, true)
	m.LookupMissed()
	m.RSVPWritten(guests.ResponseYes, 3)
	m.RSVPSkipped(guests.SkipOtherFamily)
	m.NotificationFailed("guest_confirmation")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("exact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("partial")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("ambiguous")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("miss")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RSVPRows.WithLabelValues("yes")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RSVPSkips.WithLabelValues("other_family")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsFailed.WithLabelValues("guest_confirmation")))
}

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest("/api/guest-list/lookup", "POST", 200, 15*time.Millisecond)
	m.ObserveRequest("", "GET", 404, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/api/guest-list/lookup", "POST", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("unmatched", "GET", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.HTTPDuration))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.LookupMissed()
	m.RSVPWritten(guests.ResponseNo, 1)
	m.ObserveRequest("/", "GET", 200, time.Millisecond)
}
