package delete_timeslot

import (
	"errors"
	"net/http"

	"github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers"
	"github.com/m04kA/DrivingSchool-BookingService/internal/service/timeslots"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgNotFound      = "слот не найден"
	msgSlotBooked    = "слот забронирован, сначала отмените бронирование"
)

type Handler struct {
	service TimeSlotService
	logger  Logger
}

func NewHandler(service TimeSlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/timeslots/{timeSlotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathInt64(r, "timeSlotId")
	if err != nil {
		h.logger.Warn("DELETE /timeslots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.DeleteTimeSlot(r.Context(), slotID); err != nil {
		switch {
		case errors.Is(err, timeslots.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, timeslots.ErrSlotBooked):
			handlers.RespondConflict(w, msgSlotBooked)
		case errors.Is(err, timeslots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSlotID)
		case handlers.IsRetriesExhausted(err):
			handlers.RespondRetriesExhausted(w)
		default:
			h.logger.Error("DELETE /timeslots/{id} - Failed to delete slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /timeslots/{id} - Slot deleted: slot_id=%d", slotID)
	w.WriteHeader(http.StatusNoContent)
}
