package cancel_appointment

import (
	"context"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Delete(ctx context.Context, id int64) error
}

// TimeSlotRepository интерфейс репозитория слотов
type TimeSlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	Release(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// CalendarSync синхронизация с календарем после коммита
type CalendarSync interface {
	RemoveAppointment(ctx context.Context, appointment *domain.Appointment) domain.CalendarSyncStatus
}

// Notifier уведомления пользователю после коммита
type Notifier interface {
	NotifyCancelled(ctx context.Context, appointment *domain.Appointment)
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
