package create_appointment

import (
	"time"

	"github.com/m04kA/DrivingSchool-BookingService/internal/service/appointments/models"
	createAppointment "github.com/m04kA/DrivingSchool-BookingService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	UserID    int64                  `json:"userId"`
	StartTime time.Time              `json:"startTime"` // RFC3339
	EndTime   time.Time              `json:"endTime"`   // RFC3339
	IsExam    bool                   `json:"isExam"`
	Location  *models.PickupLocation `json:"location,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	location, err := r.Location.ToDomain()
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		UserID:    r.UserID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Location:  location,
		IsExam:    r.IsExam,
	}, nil
}
