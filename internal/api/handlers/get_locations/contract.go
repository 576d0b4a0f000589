package get_locations

import (
	"context"

	"github.com/m04kA/DrivingSchool-BookingService/internal/service/locations/models"
)

type LocationService interface {
	GetByName(ctx context.Context, name string) (*models.LocationResponse, error)
	List(ctx context.Context) (*models.LocationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
