package locations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	locationRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/location"
	"github.com/m04kA/DrivingSchool-BookingService/internal/service/locations/models"
)

// Service сервис справочника локаций
type Service struct {
	locationRepo LocationRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса локаций
func NewService(locationRepo LocationRepository, logger Logger) *Service {
	return &Service{
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// GetByName ищет локацию по точному имени
func (s *Service) GetByName(ctx context.Context, name string) (*models.LocationResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > domain.MaxLocationNameLength {
		return nil, fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxLocationNameLength)
	}

	location, err := s.locationRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			s.logger.Warn("GetByName: location %q not found", name)
			return nil, ErrLocationNotFound
		}
		s.logger.Error("GetByName: repository error for %q: %v", name, err)
		return nil, fmt.Errorf("%w: GetByName - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLocation(location), nil
}

// List возвращает все локации по имени
func (s *Service) List(ctx context.Context) (*models.LocationListResponse, error) {
	locations, err := s.locationRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLocationList(locations), nil
}
