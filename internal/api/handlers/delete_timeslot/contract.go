package delete_timeslot

import "context"

type TimeSlotService interface {
	DeleteTimeSlot(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
