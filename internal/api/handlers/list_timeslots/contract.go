package list_timeslots

import (
	"context"

	"github.com/m04kA/DrivingSchool-BookingService/internal/service/timeslots/models"
)

type TimeSlotService interface {
	ListAll(ctx context.Context) (*models.TimeSlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
