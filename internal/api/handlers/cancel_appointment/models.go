package cancel_appointment

import (
	cancelAppointment "github.com/m04kA/DrivingSchool-BookingService/internal/usecase/cancel_appointment"
)

// CancelAppointmentResponse HTTP response model
type CancelAppointmentResponse struct {
	AppointmentID int64  `json:"appointmentId"`
	SlotAction    string `json:"slotAction"`   // released, deleted, none
	CalendarSync  string `json:"calendarSync"` // synced, failed, skipped
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelAppointment.Response) *CancelAppointmentResponse {
	return &CancelAppointmentResponse{
		AppointmentID: resp.AppointmentID,
		SlotAction:    string(resp.SlotAction),
		CalendarSync:  string(resp.CalendarSync),
	}
}
