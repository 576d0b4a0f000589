package book_timeslot

import (
	"errors"
	"net/http"

	"github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers"
	"github.com/m04kA/DrivingSchool-BookingService/internal/api/middleware"
	"github.com/m04kA/DrivingSchool-BookingService/internal/service/appointments/models"
	bookTimeSlot "github.com/m04kA/DrivingSchool-BookingService/internal/usecase/book_timeslot"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidLocation    = "некорректное место начала занятия"
	msgSlotNotAvailable   = "выбранный слот недоступен"
	msgLocationNotFound   = "локация не найдена"
	msgUserNotFound       = "пользователь не найден"
)

type Handler struct {
	useCase BookTimeSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookTimeSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/timeslots/{timeSlotId}/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathInt64(r, "timeSlotId")
	if err != nil {
		h.logger.Warn("POST /timeslots/{id}/book - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "")
		return
	}

	var req BookTimeSlotRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /timeslots/{id}/book - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	useCaseReq, err := req.ToUseCaseRequest(slotID, userID)
	if err != nil {
		h.logger.Warn("POST /timeslots/{id}/book - Invalid location: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocation)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookTimeSlot.ErrInvalidInput):
			h.logger.Warn("POST /timeslots/{id}/book - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLocation)

		case errors.Is(err, bookTimeSlot.ErrSlotNotAvailable):
			h.logger.Warn("POST /timeslots/{id}/book - Slot not available: slot_id=%d, user_id=%d", slotID, userID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, bookTimeSlot.ErrLocationNotFound):
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, bookTimeSlot.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)

		case handlers.IsRetriesExhausted(err):
			h.logger.Warn("POST /timeslots/{id}/book - Serialization retries exhausted: slot_id=%d", slotID)
			handlers.RespondRetriesExhausted(w)

		default:
			h.logger.Error("POST /timeslots/{id}/book - Failed to book: slot_id=%d, user_id=%d, error=%v", slotID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /timeslots/{id}/book - Booked: appointment_id=%d, slot_id=%d, user_id=%d, calendar=%s",
		result.Appointment.ID, slotID, userID, result.CalendarSync)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBookingResult(result))
}
