package get_locations

import (
	"errors"
	"net/http"

	"github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers"
	"github.com/m04kA/DrivingSchool-BookingService/internal/service/locations"
)

const (
	msgInvalidName = "некорректное имя локации"
	msgNotFound    = "локация не найдена"
)

type Handler struct {
	service LocationService
	logger  Logger
}

func NewHandler(service LocationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations и GET /api/v1/locations?name=Station
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("name") {
		resp, err := h.service.List(r.Context())
		if err != nil {
			h.logger.Error("GET /locations - Failed to list locations: %v", err)
			handlers.RespondInternalError(w)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, resp)
		return
	}

	name := r.URL.Query().Get("name")
	location, err := h.service.GetByName(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, locations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidName)
		case errors.Is(err, locations.ErrLocationNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("GET /locations - Failed to find location %q: %v", name, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, location)
}
