package locations

import (
	"context"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
)

// LocationRepository интерфейс справочника локаций
type LocationRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Location, error)
	List(ctx context.Context) ([]*domain.Location, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
