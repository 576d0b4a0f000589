package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegisterer("test-service", prometheus.NewRegistry())

	m.IncBookingOperation("book_timeslot", "success")
	m.IncBookingOperation("book_timeslot", "success")
	m.IncBookingOperation("book_timeslot", "conflict")
	m.IncCalendarSync("add_event", "failed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingOperationsTotal.WithLabelValues("book_timeslot", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingOperationsTotal.WithLabelValues("book_timeslot", "conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CalendarSyncTotal.WithLabelValues("add_event", "failed")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingOperation("cancel_appointment", "success")
		m.IncCalendarSync("delete_event", "synced")
		m.IncNotification("booking_confirmation", "sent")
		m.IncTxRetry("serialization_failure")
	})
}
