package cancel_appointment

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
	"github.com/m04kA/DrivingSchool-BookingService/internal/usecase/book_timeslot"
)

type calendarMock struct{ mock.Mock }

func (m *calendarMock) AddAppointment(ctx context.Context, a *domain.Appointment) domain.CalendarSyncStatus {
	return m.Called(ctx, a).Get(0).(domain.CalendarSyncStatus)
}

func (m *calendarMock) RemoveAppointment(ctx context.Context, a *domain.Appointment) domain.CalendarSyncStatus {
	return m.Called(ctx, a).Get(0).(domain.CalendarSyncStatus)
}

type notifierMock struct{ mock.Mock }

func (m *notifierMock) NotifyBooked(ctx context.Context, a *domain.Appointment) {
	m.Called(ctx, a)
}

func (m *notifierMock) NotifyCancelled(ctx context.Context, a *domain.Appointment) {
	m.Called(ctx, a)
}

const (
	ownerID = int64(1)
	otherID = int64(2)
	adminID = int64(10)
)

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
	store.AddUser(domain.User{ID: ownerID, FirstName: "An", LastName: "Claes", Role: domain.RoleUser})
	store.AddUser(domain.User{ID: otherID, FirstName: "Bram", LastName: "Maes", Role: domain.RoleUser})
	store.AddUser(domain.User{ID: adminID, FirstName: "Els", LastName: "Baeyens", Role: domain.RoleAdmin})

	f := &fixture{
		store:    store,
		calendar: &calendarMock{},
		notifier: &notifierMock{},
		metrics:  &testutil.MetricsRecorder{},
	}
	f.calendar.On("RemoveAppointment", mock.Anything, mock.Anything).Return(domain.CalendarSynced).Maybe()
	f.calendar.On("AddAppointment", mock.Anything, mock.Anything).Return(domain.CalendarSynced).Maybe()
	f.notifier.On("NotifyCancelled", mock.Anything, mock.Anything).Maybe()
	f.notifier.On("NotifyBooked", mock.Anything, mock.Anything).Maybe()

	f.uc = NewUseCase(store.Appointments(), store.TimeSlots(), f.calendar, f.notifier, store, f.metrics, testutil.NopLogger{})
	return f
}

func window(hour, minute int, d time.Duration) (time.Time, time.Time) {
	start := time.Date(2025, 1, 10, hour, minute, 0, 0, time.UTC)
	return start, start.Add(d)
}

// book создает слот и бронирование напрямую через хранилище
func (f *fixture) book(t *testing.T, userID int64, isExam bool) (*domain.TimeSlot, *domain.Appointment) {
	t.Helper()

	start, end := window(9, 0, 30*time.Minute)
	slot := f.store.AddSlot(domain.TimeSlot{StartTime: start, EndTime: end, IsVisible: true})

	ctx := context.Background()
	a, err := f.store.Appointments().Create(ctx, &domain.Appointment{
		UserID:     userID,
		TimeSlotID: &slot.ID,
		StartTime:  start,
		EndTime:    end,
		IsExam:     isExam,
	})
	require.NoError(t, err)
	require.NoError(t, f.store.TimeSlots().MarkBooked(ctx, slot.ID, a.ID))
	return slot, a
}

func TestExecute_RegularAppointmentReleasesSlot(t *testing.T) {
	f := setup(t)
	slot, a := f.book(t, ownerID, false)

	resp, err := f.uc.Execute(context.Background(), &Request{AppointmentID: a.ID, ActorID: ownerID, ActorRole: domain.RoleUser})

	require.NoError(t, err)
	assert.Equal(t, a.ID, resp.AppointmentID)
	assert.Equal(t, SlotReleased, resp.SlotAction)
	assert.Equal(t, domain.CalendarSynced, resp.CalendarSync)

	released := f.store.Slot(slot.ID)
	require.NotNil(t, released)
	assert.Equal(t, domain.SlotAvailable, released.Status)
	assert.True(t, released.IsVisible)
	assert.Nil(t, released.AppointmentID)
	assert.Nil(t, f.store.Appointment(a.ID))

	f.notifier.AssertCalled(t, "NotifyCancelled", mock.Anything, mock.Anything)
	assert.Equal(t, []string{"booking/cancel_appointment:success"}, f.metrics.Calls())
}

func TestExecute_ExamAppointmentDeletesSlot(t *testing.T) {
	f := setup(t)
	slot, a := f.book(t, ownerID, true)

	resp, err := f.uc.Execute(context.Background(), &Request{AppointmentID: a.ID, ActorID: ownerID, ActorRole: domain.RoleUser})

	require.NoError(t, err)
	assert.Equal(t, SlotDeleted, resp.SlotAction)
	assert.Nil(t, f.store.Slot(slot.ID))
	assert.Nil(t, f.store.Appointment(a.ID))
}

func TestExecute_AppointmentWithoutSlot(t *testing.T) {
	f := setup(t)
	slot, a := f.book(t, ownerID, false)
	require.NoError(t, f.store.TimeSlots().Delete(context.Background(), slot.ID))

	resp, err := f.uc.Execute(context.Background(), &Request{AppointmentID: a.ID, ActorID: ownerID, ActorRole: domain.RoleUser})

	require.NoError(t, err)
	assert.Equal(t, SlotNone, resp.SlotAction)
	assert.Nil(t, f.store.Appointment(a.ID))
}

func TestExecute_CancelTwiceIsNotFound(t *testing.T) {
	f := setup(t)
	slot, a := f.book(t, ownerID, false)
	req := &Request{AppointmentID: a.ID, ActorID: ownerID, ActorRole: domain.RoleUser}

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	before := f.store.Slot(slot.ID)

	_, err = f.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.Equal(t, before, f.store.Slot(slot.ID))
	f.calendar.AssertNumberOfCalls(t, "RemoveAppointment", 1)
	assert.Contains(t, f.metrics.Calls(), "booking/cancel_appointment:not_found")
}

func TestExecute_UserCannotCancelForeignAppointment(t *testing.T) {
	f := setup(t)
	slot, a := f.book(t, ownerID, false)

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: a.ID, ActorID: otherID, ActorRole: domain.RoleUser})

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.NotNil(t, f.store.Appointment(a.ID))
	assert.Equal(t, domain.SlotBooked, f.store.Slot(slot.ID).Status)
	f.calendar.AssertNotCalled(t, "RemoveAppointment", mock.Anything, mock.Anything)
}

func TestExecute_AdminCancelsAnyAppointment(t *testing.T) {
	f := setup(t)
	slot, a := f.book(t, ownerID, false)

	resp, err := f.uc.Execute(context.Background(), &Request{AppointmentID: a.ID, ActorID: adminID, ActorRole: domain.RoleAdmin})

	require.NoError(t, err)
	assert.Equal(t, SlotReleased, resp.SlotAction)
	assert.Equal(t, domain.SlotAvailable, f.store.Slot(slot.ID).Status)
}

func TestExecute_RollsBackSlotWhenDeleteFails(t *testing.T) {
	f := setup(t)
	slot, a := f.book(t, ownerID, false)
	f.store.FailOn("appointments.Delete", errors.New("connection reset"))

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: a.ID, ActorID: ownerID, ActorRole: domain.RoleUser})

	require.ErrorIs(t, err, ErrInternal)
	restored := f.store.Slot(slot.ID)
	assert.Equal(t, domain.SlotBooked, restored.Status)
	require.NotNil(t, restored.AppointmentID)
	assert.Equal(t, a.ID, *restored.AppointmentID)
	assert.NotNil(t, f.store.Appointment(a.ID))
}

func TestExecute_InvalidInput(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name string
		req  *Request
	}{
		{"nil", nil},
		{"zero id", &Request{ActorID: ownerID, ActorRole: domain.RoleUser}},
		{"no actor", &Request{AppointmentID: 1, ActorRole: domain.RoleUser}},
		{"unknown role", &Request{AppointmentID: 1, ActorID: ownerID, ActorRole: "GUEST"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// U1 бронирует, U2 получает конфликт, U1 отменяет, U2 бронирует
func TestScenario_BookConflictCancelRebook(t *testing.T) {
	f := setup(t)
	start, end := window(9, 0, 30*time.Minute)
	slot := f.store.AddSlot(domain.TimeSlot{StartTime: start, EndTime: end, IsVisible: true})

	book := book_timeslot.NewUseCase(f.store.TimeSlots(), f.store.Appointments(), f.store.Locations(),
		f.calendar, f.notifier, f.store, f.metrics, testutil.NopLogger{})
	ctx := context.Background()

	first, err := book.Execute(ctx, &book_timeslot.Request{TimeSlotID: slot.ID, UserID: ownerID})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotBooked, f.store.Slot(slot.ID).Status)

	_, err = book.Execute(ctx, &book_timeslot.Request{TimeSlotID: slot.ID, UserID: otherID})
	require.ErrorIs(t, err, book_timeslot.ErrSlotNotAvailable)

	_, err = f.uc.Execute(ctx, &Request{AppointmentID: first.Appointment.ID, ActorID: ownerID, ActorRole: domain.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotAvailable, f.store.Slot(slot.ID).Status)

	second, err := book.Execute(ctx, &book_timeslot.Request{TimeSlotID: slot.ID, UserID: otherID})
	require.NoError(t, err)
	assert.Equal(t, otherID, second.Appointment.UserID)
	assert.Len(t, f.store.AppointmentsForSlot(slot.ID), 1)
}
