package get_timeslot_by_start

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers"
	"github.com/m04kA/DrivingSchool-BookingService/internal/service/timeslots"
)

const (
	msgInvalidStartTime = "некорректный параметр startTime, ожидается RFC3339"
	msgNotFound         = "слот не найден"
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

// Handle GET /api/v1/timeslots/by-start?startTime=2025-01-10T09:00:00Z
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("startTime")
	startTime, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		h.logger.Warn("GET /timeslots/by-start - Invalid startTime=%q: %v", raw, err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	slot, err := h.service.GetByStartTime(r.Context(), startTime)
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, timeslots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStartTime)
		default:
			h.logger.Error("GET /timeslots/by-start - Failed to get slot: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, slot)
}
