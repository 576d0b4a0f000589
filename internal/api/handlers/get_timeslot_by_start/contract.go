package get_timeslot_by_start

import (
	"context"
	"time"

	"github.com/m04kA/DrivingSchool-BookingService/internal/service/timeslots/models"
)

type TimeSlotService interface {
	GetByStartTime(ctx context.Context, startTime time.Time) (*models.TimeSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
