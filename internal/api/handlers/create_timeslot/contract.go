package create_timeslot

import (
	"context"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	createTimeSlot "github.com/m04kA/DrivingSchool-BookingService/internal/usecase/create_timeslot"
)

type CreateTimeSlotUseCase interface {
	Execute(ctx context.Context, req *createTimeSlot.Request) (*domain.TimeSlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
