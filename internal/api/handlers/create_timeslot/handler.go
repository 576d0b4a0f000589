package create_timeslot

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers"
	"github.com/m04kA/DrivingSchool-BookingService/internal/service/timeslots/models"
	createTimeSlot "github.com/m04kA/DrivingSchool-BookingService/internal/usecase/create_timeslot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса, время ожидается в формате RFC3339"
	msgInvalidWindow      = "начало слота должно быть раньше конца"
)

type Handler struct {
	useCase  CreateTimeSlotUseCase
	location *time.Location
	logger   Logger
}

// NewHandler location - часовой пояс для текста конфликта
func NewHandler(useCase CreateTimeSlotUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/timeslots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateTimeSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /timeslots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createTimeSlot.ErrInvalidInput):
			h.logger.Warn("POST /timeslots - Invalid window: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, createTimeSlot.ErrSlotOverlap):
			h.logger.Warn("POST /timeslots - Overlap: %v", err)
			handlers.RespondConflict(w, handlers.OverlapMessage(err, h.location))

		case handlers.IsRetriesExhausted(err):
			h.logger.Warn("POST /timeslots - Serialization retries exhausted: %v", err)
			handlers.RespondRetriesExhausted(w)

		default:
			h.logger.Error("POST /timeslots - Failed to create time slot: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /timeslots - Time slot created: id=%d", slot.ID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainTimeSlot(slot))
}
