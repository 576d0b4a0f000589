package create_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers"
	"github.com/m04kA/DrivingSchool-BookingService/internal/service/appointments/models"
	createAppointment "github.com/m04kA/DrivingSchool-BookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные бронирования"
	msgUserNotFound       = "пользователь не найден"
	msgLocationNotFound   = "локация не найдена"
)

type Handler struct {
	useCase  CreateAppointmentUseCase
	location *time.Location
	logger   Logger
}

// NewHandler location - часовой пояс для текста конфликта
func NewHandler(useCase CreateAppointmentUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid location: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrSlotOverlap):
			h.logger.Warn("POST /appointments - Overlap: user_id=%d: %v", req.UserID, err)
			handlers.RespondConflict(w, handlers.OverlapMessage(err, h.location))

		case errors.Is(err, createAppointment.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createAppointment.ErrLocationNotFound):
			handlers.RespondNotFound(w, msgLocationNotFound)

		case handlers.IsRetriesExhausted(err):
			h.logger.Warn("POST /appointments - Serialization retries exhausted: %v", err)
			handlers.RespondRetriesExhausted(w)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%d, error=%v", req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%d, user_id=%d, exam=%t, calendar=%s",
		result.Appointment.ID, req.UserID, req.IsExam, result.CalendarSync)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBookingResult(result))
}
