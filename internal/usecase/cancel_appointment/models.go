package cancel_appointment

import "github.com/m04kA/DrivingSchool-BookingService/internal/domain"

// SlotAction что произошло со слотом при отмене
type SlotAction string

const (
	SlotReleased SlotAction = "released" // обычное занятие, слот снова свободен
	SlotDeleted  SlotAction = "deleted"  // экзамен, слот удален
	SlotNone     SlotAction = "none"     // слот уже был удален ранее
)

// Request модель запроса на отмену
type Request struct {
	AppointmentID int64
	ActorID       int64       // кто отменяет
	ActorRole     domain.Role // роль из токена
}

// Response результат отмены
type Response struct {
	AppointmentID int64
	SlotAction    SlotAction
	CalendarSync  domain.CalendarSyncStatus
}
