package create_timeslot

import (
	"time"

	createTimeSlot "github.com/m04kA/DrivingSchool-BookingService/internal/usecase/create_timeslot"
)

// CreateTimeSlotRequest HTTP request model
type CreateTimeSlotRequest struct {
	StartTime time.Time `json:"startTime"` // RFC3339
	EndTime   time.Time `json:"endTime"`   // RFC3339
	IsVisible *bool     `json:"isVisible,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateTimeSlotRequest) ToUseCaseRequest() *createTimeSlot.Request {
	return &createTimeSlot.Request{
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		IsVisible: r.IsVisible,
	}
}
