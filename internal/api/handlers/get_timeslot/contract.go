package get_timeslot

import (
	"context"

	"github.com/m04kA/DrivingSchool-BookingService/internal/service/timeslots/models"
)

type TimeSlotService interface {
	GetByID(ctx context.Context, id int64) (*models.TimeSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
