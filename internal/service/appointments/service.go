package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/appointment"
	locationRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/location"
	"github.com/m04kA/DrivingSchool-BookingService/internal/service/appointments/models"
)

// Service сервис для чтения и изменения бронирований
type Service struct {
	appointmentRepo AppointmentRepository
	locationRepo    LocationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	appointmentRepo AppointmentRepository,
	locationRepo LocationRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		locationRepo:    locationRepo,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только свои бронирования, администратор любые
func (s *Service) GetByID(ctx context.Context, id, actorID int64, actorRole domain.Role) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, actorID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if actorRole != domain.RoleAdmin && !appointment.IsOwnedBy(actorID) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", actorID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// ListByUser получает бронирования пользователя по возрастанию начала
func (s *Service) ListByUser(ctx context.Context, userID, actorID int64, actorRole domain.Role) (*models.AppointmentListResponse, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}

	if actorRole != domain.RoleAdmin && userID != actorID {
		s.logger.Warn("ListByUser: access denied for user=%d to appointments of user=%d", actorID, userID)
		return nil, ErrAccessDenied
	}

	appointments, err := s.appointmentRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByUser: found %d appointments for user=%d", len(appointments), userID)
	return models.FromDomainAppointmentList(appointments), nil
}

// ListAll получает все бронирования
func (s *Service) ListAll(ctx context.Context) (*models.AppointmentListResponse, error) {
	appointments, err := s.appointmentRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(appointments), nil
}

// Update изменяет место начала занятия
// Остальные поля (слот, время, тип, событие календаря) не изменяются
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateAppointmentRequest) (*models.AppointmentResponse, error) {
	if id <= 0 || req == nil || req.Location == nil {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}

	location, err := req.Location.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := domain.ValidatePickupLocation(location); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("Update: changing location of appointment id=%d", id)

	if named, ok := location.(domain.NamedLocation); ok {
		if _, err := s.locationRepo.GetByID(ctx, named.ID); err != nil {
			if errors.Is(err, locationRepo.ErrLocationNotFound) {
				s.logger.Warn("Update: location id=%d not found", named.ID)
				return nil, ErrLocationNotFound
			}
			s.logger.Error("Update: failed to get location id=%d: %v", named.ID, err)
			return nil, fmt.Errorf("%w: Update - get location: %v", ErrInternal, err)
		}
	}

	if err := s.appointmentRepo.UpdateLocation(ctx, id, location); err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			s.logger.Warn("Update: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		case errors.Is(err, appointmentRepo.ErrReferenceNotFound):
			return nil, ErrLocationNotFound
		case errors.Is(err, appointmentRepo.ErrInvalidLocation):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		s.logger.Error("Update: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - reload: %v", ErrInternal, err)
	}

	s.logger.Info("Update: appointment id=%d updated", id)
	return models.FromDomainAppointment(appointment), nil
}
