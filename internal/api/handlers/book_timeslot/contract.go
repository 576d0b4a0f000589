package book_timeslot

import (
	"context"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	bookTimeSlot "github.com/m04kA/DrivingSchool-BookingService/internal/usecase/book_timeslot"
)

type BookTimeSlotUseCase interface {
	Execute(ctx context.Context, req *bookTimeSlot.Request) (*domain.BookingResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
