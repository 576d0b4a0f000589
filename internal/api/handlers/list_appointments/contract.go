package list_appointments

import (
	"context"

	"github.com/m04kA/DrivingSchool-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	ListAll(ctx context.Context) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
