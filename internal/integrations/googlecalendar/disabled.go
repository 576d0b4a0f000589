package googlecalendar

import (
	"context"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
)

// Disabled клиент-заглушка для окружений без доступа к календарю
type Disabled struct{}

// AddEvent всегда возвращает ErrDisabled
func (Disabled) AddEvent(context.Context, *domain.Appointment, *domain.User, *domain.Location) (string, error) {
	return "", ErrDisabled
}

// DeleteEvent всегда возвращает ErrDisabled
func (Disabled) DeleteEvent(context.Context, string) error {
	return ErrDisabled
}
