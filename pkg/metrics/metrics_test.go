package metrics

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("test", reg)

	m.RecordHTTPRequest("POST", "/api/v1/appointments", 201, 15*time.Millisecond)
	m.RecordHTTPRequest("POST", "/api/v1/appointments", 201, 20*time.Millisecond)

	count := testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/api/v1/appointments", "201"))
	assert.Equal(t, 2.0, count)
}

func TestMetrics_CalendarAndSweep(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("test", reg)

	m.RecordCalendarNotification("create", nil)
	m.RecordCalendarNotification("create", errors.New("boom"))
	m.AddSweepCancelled("cron", 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.calendarNotifications.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calendarNotifications.WithLabelValues("create", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.sweepCancelled.WithLabelValues("cron")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	require.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/", 200, time.Second)
		m.ObserveDBQuery("query", nil, time.Millisecond)
		m.SetDBPoolStats("test", sql.DBStats{})
		m.RecordCalendarNotification("cancel", nil)
		m.AddSweepCancelled("http", 1)
		m.RecordAppointment("created")
		m.ObserveSlotSearch("exhaustive", "found", time.Millisecond)
	})
}

func TestMetrics_Appointments(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("test", reg)

	m.RecordAppointment("created")
	m.RecordAppointment("created")
	m.RecordAppointment("cancelled")
	m.ObserveSlotSearch("exhaustive", "found", 30*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.appointmentsTotal.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.appointmentsTotal.WithLabelValues("cancelled")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.slotSearchDuration))
}
