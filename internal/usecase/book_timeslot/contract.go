package book_timeslot

import (
	"context"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
)

// TimeSlotRepository интерфейс репозитория слотов
type TimeSlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	MarkBooked(ctx context.Context, id, appointmentID int64) error
}

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// LocationRepository интерфейс справочника локаций
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
}

// CalendarSync синхронизация с календарем после коммита
type CalendarSync interface {
	AddAppointment(ctx context.Context, appointment *domain.Appointment) domain.CalendarSyncStatus
}

// Notifier уведомления пользователю после коммита
type Notifier interface {
	NotifyBooked(ctx context.Context, appointment *domain.Appointment)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для учета результатов операций бронирования
type Metrics interface {
	IncBookingOperation(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
