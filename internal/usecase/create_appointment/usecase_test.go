package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	"github.com/m04kA/DrivingSchool-BookingService/internal/testutil"
	"github.com/m04kA/DrivingSchool-BookingService/internal/testutil/memstore"
)

type calendarMock struct{ mock.Mock }

func (m *calendarMock) AddAppointment(ctx context.Context, a *domain.Appointment) domain.CalendarSyncStatus {
	return m.Called(ctx, a).Get(0).(domain.CalendarSyncStatus)
}

type notifierMock struct{ mock.Mock }

func (m *notifierMock) NotifyBooked(ctx context.Context, a *domain.Appointment) {
	m.Called(ctx, a)
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 1, 10, hour, minute, 0, 0, time.UTC)
}

type fixture struct {
	store    *memstore.Store
	uc       *UseCase
	calendar *calendarMock
	notifier *notifierMock
	metrics  *testutil.MetricsRecorder
}

func setup(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	store.AddUser(domain.User{ID: 1, FirstName: "An", LastName: "Claes", Role: domain.RoleUser})
	store.AddLocation(domain.Location{ID: 3, Name: "Examencentrum"})

	f := &fixture{
		store:    store,
		calendar: &calendarMock{},
		notifier: &notifierMock{},
		metrics:  &testutil.MetricsRecorder{},
	}
	f.uc = NewUseCase(store.TimeSlots(), store.Appointments(), store.Users(), store.Locations(),
		f.calendar, f.notifier, store, f.metrics, testutil.NopLogger{})
	return f
}

func TestExecute_CreatesBookedHiddenSlot(t *testing.T) {
	f := setup(t)
	f.calendar.On("AddAppointment", mock.Anything, mock.Anything).Return(domain.CalendarSynced).Once()
	f.notifier.On("NotifyBooked", mock.Anything, mock.Anything).Once()

	result, err := f.uc.Execute(context.Background(), &Request{
		UserID:    1,
		StartTime: at(14, 0),
		EndTime:   at(15, 0),
		Location:  domain.NamedLocation{ID: 3},
		IsExam:    true,
	})

	require.NoError(t, err)
	a := result.Appointment
	assert.True(t, a.IsExam)
	assert.Equal(t, domain.NamedLocation{ID: 3}, a.Location)
	assert.Equal(t, domain.CalendarSynced, result.CalendarSync)
	require.NotNil(t, a.TimeSlotID)

	slot := f.store.Slot(*a.TimeSlotID)
	require.NotNil(t, slot)
	assert.Equal(t, domain.SlotBooked, slot.Status)
	assert.False(t, slot.IsVisible)
	require.NotNil(t, slot.AppointmentID)
	assert.Equal(t, a.ID, *slot.AppointmentID)
	assert.True(t, slot.StartTime.Equal(at(14, 0)))
	assert.True(t, slot.EndTime.Equal(at(15, 0)))

	f.calendar.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
	assert.Equal(t, []string{"booking/create_appointment:success"}, f.metrics.Calls())
}

func TestExecute_CustomPickupAddress(t *testing.T) {
	f := setup(t)
	f.calendar.On("AddAppointment", mock.Anything, mock.Anything).Return(domain.CalendarSkipped)
	f.notifier.On("NotifyBooked", mock.Anything, mock.Anything)

	addr := domain.CustomAddress{Street: "Kerkstraat", HouseNumber: "12", PostalCode: "2000", City: "Antwerpen"}
	result, err := f.uc.Execute(context.Background(), &Request{UserID: 1, StartTime: at(8, 0), EndTime: at(9, 0), Location: addr})

	require.NoError(t, err)
	assert.Equal(t, addr, result.Appointment.Location)
	assert.Equal(t, domain.CalendarSkipped, result.CalendarSync)
}

func TestExecute_OverlapWithExistingSlot(t *testing.T) {
	f := setup(t)
	f.store.AddSlot(domain.TimeSlot{StartTime: at(10, 0), EndTime: at(11, 0), IsVisible: true})

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 1, StartTime: at(10, 30), EndTime: at(11, 30)})

	require.ErrorIs(t, err, ErrSlotOverlap)
	var overlap *domain.OverlapError
	require.ErrorAs(t, err, &overlap)
	assert.True(t, overlap.Start.Equal(at(10, 0)))
	assert.True(t, overlap.End.Equal(at(11, 0)))

	f.calendar.AssertNotCalled(t, "AddAppointment", mock.Anything, mock.Anything)
	assert.Contains(t, f.metrics.Calls(), "booking/create_appointment:conflict")
}

func TestExecute_AdjacentWindowIsAllowed(t *testing.T) {
	f := setup(t)
	f.store.AddSlot(domain.TimeSlot{StartTime: at(10, 0), EndTime: at(11, 0), IsVisible: true})
	f.calendar.On("AddAppointment", mock.Anything, mock.Anything).Return(domain.CalendarSynced)
	f.notifier.On("NotifyBooked", mock.Anything, mock.Anything)

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 1, StartTime: at(11, 0), EndTime: at(12, 0)})

	require.NoError(t, err)
}

func TestExecute_UnknownUser(t *testing.T) {
	f := setup(t)

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 99, StartTime: at(10, 0), EndTime: at(11, 0)})

	require.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, 0, f.store.Calls("timeslots.Create"))
}

func TestExecute_UnknownLocation(t *testing.T) {
	f := setup(t)

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID: 1, StartTime: at(10, 0), EndTime: at(11, 0), Location: domain.NamedLocation{ID: 8},
	})

	require.ErrorIs(t, err, ErrLocationNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name string
		req  *Request
	}{
		{"nil", nil},
		{"no user", &Request{StartTime: at(10, 0), EndTime: at(11, 0)}},
		{"reversed window", &Request{UserID: 1, StartTime: at(11, 0), EndTime: at(10, 0)}},
		{"missing end", &Request{UserID: 1, StartTime: at(11, 0)}},
		{"bad location id", &Request{UserID: 1, StartTime: at(10, 0), EndTime: at(11, 0), Location: domain.NamedLocation{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_RollsBackSlotWhenAppointmentFails(t *testing.T) {
	f := setup(t)
	f.store.FailOn("appointments.Create", errors.New("connection reset"))

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 1, StartTime: at(10, 0), EndTime: at(11, 0)})

	require.ErrorIs(t, err, ErrInternal)
	all, err := f.store.TimeSlots().ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "slot insert must be rolled back")
	assert.Equal(t, []string{"booking/create_appointment:error"}, f.metrics.Calls())
}

// racingSlotRepo скрывает существующие слоты при первых чтениях, как параллельная транзакция,
// чья вставка еще не видна
type racingSlotRepo struct {
	*memstore.TimeSlotRepository
	hiddenReads int
}

func (r *racingSlotRepo) GetIntersecting(ctx context.Context, start, end time.Time) ([]*domain.TimeSlot, error) {
	if r.hiddenReads > 0 {
		r.hiddenReads--
		return nil, nil
	}
	return r.TimeSlotRepository.GetIntersecting(ctx, start, end)
}

func TestExecute_ConstraintOverlapReportsExistingWindow(t *testing.T) {
	f := setup(t)
	f.store.AddSlot(domain.TimeSlot{StartTime: at(12, 30), EndTime: at(13, 30), IsVisible: true})

	repo := &racingSlotRepo{TimeSlotRepository: f.store.TimeSlots(), hiddenReads: 1}
	uc := NewUseCase(repo, f.store.Appointments(), f.store.Users(), f.store.Locations(),
		f.calendar, f.notifier, f.store, f.metrics, testutil.NopLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 1, StartTime: at(13, 0), EndTime: at(14, 0)})

	require.ErrorIs(t, err, ErrSlotOverlap)
	var overlap *domain.OverlapError
	require.ErrorAs(t, err, &overlap)
	assert.True(t, overlap.Start.Equal(at(12, 30)))
	assert.True(t, overlap.End.Equal(at(13, 30)))
	f.calendar.AssertNotCalled(t, "AddAppointment", mock.Anything, mock.Anything)
}
