// Package testutil holds fakes shared by package tests.
package testutil

import (
	"fmt"
	"sync"
)

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}

// MetricsRecorder records counter increments as "operation:result"
type MetricsRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (m *MetricsRecorder) IncBookingOperation(operation, result string) {
	m.record("booking", operation, result)
}

func (m *MetricsRecorder) IncCalendarSync(operation, result string) {
	m.record("calendar", operation, result)
}

func (m *MetricsRecorder) IncNotification(kind, result string) {
	m.record("notification", kind, result)
}

func (m *MetricsRecorder) record(family, label, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, fmt.Sprintf("%s/%s:%s", family, label, result))
}

// Calls returns the recorded increments
func (m *MetricsRecorder) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
