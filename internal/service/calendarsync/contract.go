package calendarsync

import (
	"context"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
)

// CalendarClient интерфейс клиента календаря
type CalendarClient interface {
	AddEvent(ctx context.Context, appointment *domain.Appointment, user *domain.User, location *domain.Location) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	SetCalendarEventID(ctx context.Context, id int64, eventID string) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// LocationRepository интерфейс справочника локаций
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
}

// Metrics интерфейс для учета результатов синхронизации
type Metrics interface {
	IncCalendarSync(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
