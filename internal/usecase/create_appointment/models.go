package create_appointment

import (
	"time"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
)

// Request модель запроса на бронирование с новым слотом
type Request struct {
	UserID    int64
	StartTime time.Time
	EndTime   time.Time
	Location  domain.PickupLocation // nil, NamedLocation или CustomAddress
	IsExam    bool
}
