package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers"
	"github.com/m04kA/DrivingSchool-BookingService/internal/api/middleware"
	cancelAppointment "github.com/m04kA/DrivingSchool-BookingService/internal/usecase/cancel_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID бронирования"
	msgNotFound             = "бронирование не найдено"
)

type Handler struct {
	useCase CancelAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CancelAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("DELETE /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	role, hasRole := middleware.GetRole(r.Context())
	if !ok || !hasRole {
		handlers.RespondUnauthorized(w, "")
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &cancelAppointment.Request{
		AppointmentID: appointmentID,
		ActorID:       userID,
		ActorRole:     role,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelAppointment.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/{id} - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelAppointment.ErrAccessDenied):
			h.logger.Warn("DELETE /appointments/{id} - Access denied: appointment_id=%d, user_id=%d", appointmentID, userID)
			handlers.RespondForbidden(w, "")

		case errors.Is(err, cancelAppointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)

		case handlers.IsRetriesExhausted(err):
			h.logger.Warn("DELETE /appointments/{id} - Serialization retries exhausted: appointment_id=%d", appointmentID)
			handlers.RespondRetriesExhausted(w)

		default:
			h.logger.Error("DELETE /appointments/{id} - Failed to cancel: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{id} - Cancelled: appointment_id=%d, slot=%s, calendar=%s",
		appointmentID, resp.SlotAction, resp.CalendarSync)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
