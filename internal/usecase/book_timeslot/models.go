package book_timeslot

import "github.com/m04kA/DrivingSchool-BookingService/internal/domain"

// Request модель запроса на бронирование существующего слота
type Request struct {
	TimeSlotID int64                 // ID слота
	UserID     int64                 // ID пользователя (из токена)
	Location   domain.PickupLocation // Место встречи (опционально)
}
