package book_timeslot

import (
	"github.com/m04kA/DrivingSchool-BookingService/internal/service/appointments/models"
	bookTimeSlot "github.com/m04kA/DrivingSchool-BookingService/internal/usecase/book_timeslot"
)

// BookTimeSlotRequest HTTP request model, тело необязательно
type BookTimeSlotRequest struct {
	Location *models.PickupLocation `json:"location,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookTimeSlotRequest) ToUseCaseRequest(slotID, userID int64) (*bookTimeSlot.Request, error) {
	location, err := r.Location.ToDomain()
	if err != nil {
		return nil, err
	}

	return &bookTimeSlot.Request{
		TimeSlotID: slotID,
		UserID:     userID,
		Location:   location,
	}, nil
}
