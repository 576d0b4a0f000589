package calendarsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/DrivingSchool-BookingService/internal/integrations/googlecalendar"
	"github.com/m04kA/DrivingSchool-BookingService/pkg/ptr"
)

type calendarMock struct{ mock.Mock }

func (m *calendarMock) AddEvent(ctx context.Context, a *domain.Appointment, u *domain.User, l *domain.Location) (string, error) {
	args := m.Called(ctx, a, u, l)
	return args.String(0), args.Error(1)
}

func (m *calendarMock) DeleteEvent(ctx context.Context, eventID string) error {
	return m.Called(ctx, eventID).Error(0)
}

type appointmentRepoMock struct{ mock.Mock }

func (m *appointmentRepoMock) SetCalendarEventID(ctx context.Context, id int64, eventID string) error {
	return m.Called(ctx, id, eventID).Error(0)
}

type userRepoStub struct {
	user *domain.User
	err  error
}

func (s userRepoStub) GetByID(context.Context, int64) (*domain.User, error) { return s.user, s.err }

type locationRepoStub struct {
	location *domain.Location
	err      error
}

func (s locationRepoStub) GetByID(context.Context, int64) (*domain.Location, error) {
	return s.location, s.err
}

type metricsRecorder struct{ calls []string }

func (m *metricsRecorder) IncCalendarSync(operation, result string) {
	m.calls = append(m.calls, operation+":"+result)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var student = &domain.User{ID: 1, FirstName: "Jan", LastName: "Peeters", Email: "jan@example.com"}

func newAppointment() *domain.Appointment {
	start := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	return &domain.Appointment{ID: 10, UserID: 1, StartTime: start, EndTime: start.Add(30 * time.Minute)}
}

func TestAddAppointment_Synced(t *testing.T) {
	cal := &calendarMock{}
	repo := &appointmentRepoMock{}
	rec := &metricsRecorder{}
	loc := &domain.Location{ID: 3, Name: "Station"}
	svc := NewService(cal, repo, userRepoStub{user: student}, locationRepoStub{location: loc}, rec, time.Second, nopLogger{})

	a := newAppointment()
	a.Location = domain.NamedLocation{ID: 3}

	cal.On("AddEvent", mock.Anything, a, student, loc).Return("evt-1", nil)
	repo.On("SetCalendarEventID", mock.Anything, int64(10), "evt-1").Return(nil)

	status := svc.AddAppointment(context.Background(), a)

	assert.Equal(t, domain.CalendarSynced, status)
	require.NotNil(t, a.CalendarEventID)
	assert.Equal(t, "evt-1", *a.CalendarEventID)
	assert.Equal(t, []string{"add:synced"}, rec.calls)
	cal.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestAddAppointment_Disabled(t *testing.T) {
	repo := &appointmentRepoMock{}
	rec := &metricsRecorder{}
	svc := NewService(googlecalendar.Disabled{}, repo, userRepoStub{user: student}, locationRepoStub{}, rec, 0, nopLogger{})

	status := svc.AddAppointment(context.Background(), newAppointment())

	assert.Equal(t, domain.CalendarSkipped, status)
	assert.Equal(t, []string{"add:skipped"}, rec.calls)
	repo.AssertNotCalled(t, "SetCalendarEventID", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddAppointment_CalendarFailure(t *testing.T) {
	cal := &calendarMock{}
	repo := &appointmentRepoMock{}
	svc := NewService(cal, repo, userRepoStub{user: student}, locationRepoStub{}, &metricsRecorder{}, time.Second, nopLogger{})

	a := newAppointment()
	cal.On("AddEvent", mock.Anything, a, student, (*domain.Location)(nil)).
		Return("", googlecalendar.ErrRequest)

	assert.Equal(t, domain.CalendarFailed, svc.AddAppointment(context.Background(), a))
	assert.Nil(t, a.CalendarEventID)
}

func TestAddAppointment_UserLookupFailure(t *testing.T) {
	cal := &calendarMock{}
	svc := NewService(cal, &appointmentRepoMock{}, userRepoStub{err: errors.New("db down")}, locationRepoStub{}, &metricsRecorder{}, time.Second, nopLogger{})

	assert.Equal(t, domain.CalendarFailed, svc.AddAppointment(context.Background(), newAppointment()))
	cal.AssertNotCalled(t, "AddEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddAppointment_SurvivesCancelledRequestContext(t *testing.T) {
	cal := &calendarMock{}
	repo := &appointmentRepoMock{}
	svc := NewService(cal, repo, userRepoStub{user: student}, locationRepoStub{}, &metricsRecorder{}, time.Second, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newAppointment()
	cal.On("AddEvent", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), a, student, (*domain.Location)(nil)).
		Return("evt-2", nil)
	repo.On("SetCalendarEventID", mock.Anything, int64(10), "evt-2").Return(nil)

	assert.Equal(t, domain.CalendarSynced, svc.AddAppointment(ctx, a))
}

func TestAddAppointment_CancelledBeforeEventSaved(t *testing.T) {
	cal := &calendarMock{}
	repo := &appointmentRepoMock{}
	rec := &metricsRecorder{}
	svc := NewService(cal, repo, userRepoStub{user: student}, locationRepoStub{}, rec, time.Second, nopLogger{})

	a := newAppointment()
	cal.On("AddEvent", mock.Anything, a, student, (*domain.Location)(nil)).Return("evt-3", nil)
	repo.On("SetCalendarEventID", mock.Anything, int64(10), "evt-3").Return(appointmentRepo.ErrAppointmentNotFound)
	cal.On("DeleteEvent", mock.Anything, "evt-3").Return(nil)

	assert.Equal(t, domain.CalendarFailed, svc.AddAppointment(context.Background(), a))
	assert.Nil(t, a.CalendarEventID)
	assert.Equal(t, []string{"add:failed"}, rec.calls)
	cal.AssertExpectations(t)
}

func TestAddAppointment_SaveFailureKeepsEvent(t *testing.T) {
	cal := &calendarMock{}
	repo := &appointmentRepoMock{}
	svc := NewService(cal, repo, userRepoStub{user: student}, locationRepoStub{}, &metricsRecorder{}, time.Second, nopLogger{})

	a := newAppointment()
	cal.On("AddEvent", mock.Anything, a, student, (*domain.Location)(nil)).Return("evt-4", nil)
	repo.On("SetCalendarEventID", mock.Anything, int64(10), "evt-4").Return(errors.New("db down"))

	assert.Equal(t, domain.CalendarFailed, svc.AddAppointment(context.Background(), a))
	cal.AssertNotCalled(t, "DeleteEvent", mock.Anything, mock.Anything)
}

func TestRemoveAppointment(t *testing.T) {
	t.Run("no event", func(t *testing.T) {
		cal := &calendarMock{}
		svc := NewService(cal, &appointmentRepoMock{}, userRepoStub{}, locationRepoStub{}, &metricsRecorder{}, time.Second, nopLogger{})

		assert.Equal(t, domain.CalendarSkipped, svc.RemoveAppointment(context.Background(), newAppointment()))
		cal.AssertNotCalled(t, "DeleteEvent", mock.Anything, mock.Anything)
	})

	t.Run("deleted", func(t *testing.T) {
		cal := &calendarMock{}
		rec := &metricsRecorder{}
		svc := NewService(cal, &appointmentRepoMock{}, userRepoStub{}, locationRepoStub{}, rec, time.Second, nopLogger{})

		a := newAppointment()
		a.CalendarEventID = ptr.Ptr("evt-1")
		cal.On("DeleteEvent", mock.Anything, "evt-1").Return(nil)

		assert.Equal(t, domain.CalendarSynced, svc.RemoveAppointment(context.Background(), a))
		assert.Equal(t, []string{"delete:synced"}, rec.calls)
	})

	t.Run("failure", func(t *testing.T) {
		cal := &calendarMock{}
		svc := NewService(cal, &appointmentRepoMock{}, userRepoStub{}, locationRepoStub{}, &metricsRecorder{}, time.Second, nopLogger{})

		a := newAppointment()
		a.CalendarEventID = ptr.Ptr("evt-1")
		cal.On("DeleteEvent", mock.Anything, "evt-1").Return(googlecalendar.ErrRequest)

		assert.Equal(t, domain.CalendarFailed, svc.RemoveAppointment(context.Background(), a))
	})
}
