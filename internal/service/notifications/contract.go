package notifications

import (
	"context"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	"github.com/m04kA/DrivingSchool-BookingService/internal/integrations/mailer"
)

// Mailer интерфейс отправителя писем
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// LocationRepository интерфейс справочника локаций
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
}

// Metrics интерфейс для учета отправленных уведомлений
type Metrics interface {
	IncNotification(kind, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
