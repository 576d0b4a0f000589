package calendarsync

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/DrivingSchool-BookingService/internal/integrations/googlecalendar"
)

// DefaultTimeout ограничение на один вызов календаря после коммита
const DefaultTimeout = 5 * time.Second

const (
	operationAdd    = "add"
	operationDelete = "delete"
)

// Service синхронизирует бронирования с внешним календарем
// Вызывается после коммита транзакции, ошибки не откатывают локальное состояние
type Service struct {
	calendar        CalendarClient
	appointmentRepo AppointmentRepository
	userRepo        UserRepository
	locationRepo    LocationRepository
	metrics         Metrics
	timeout         time.Duration
	logger          Logger
}

// NewService создает сервис синхронизации с календарем
func NewService(
	calendar CalendarClient,
	appointmentRepo AppointmentRepository,
	userRepo UserRepository,
	locationRepo LocationRepository,
	metrics Metrics,
	timeout time.Duration,
	logger Logger,
) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		calendar:        calendar,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		locationRepo:    locationRepo,
		metrics:         metrics,
		timeout:         timeout,
		logger:          logger,
	}
}

// AddAppointment создает событие и сохраняет его ID в бронировании
func (s *Service) AddAppointment(ctx context.Context, appointment *domain.Appointment) domain.CalendarSyncStatus {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	status := s.add(ctx, appointment)
	s.metrics.IncCalendarSync(operationAdd, string(status))
	return status
}

// RemoveAppointment удаляет событие бронирования, если оно было создано
func (s *Service) RemoveAppointment(ctx context.Context, appointment *domain.Appointment) domain.CalendarSyncStatus {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	status := s.remove(ctx, appointment)
	s.metrics.IncCalendarSync(operationDelete, string(status))
	return status
}

func (s *Service) add(ctx context.Context, appointment *domain.Appointment) domain.CalendarSyncStatus {
	user, err := s.userRepo.GetByID(ctx, appointment.UserID)
	if err != nil {
		s.logger.Error("CalendarSync: failed to get user id=%d for appointment id=%d: %v",
			appointment.UserID, appointment.ID, err)
		return domain.CalendarFailed
	}

	var location *domain.Location
	if locationID, ok := appointment.NamedLocationID(); ok {
		location, err = s.locationRepo.GetByID(ctx, locationID)
		if err != nil {
			s.logger.Warn("CalendarSync: failed to get location id=%d, event will use fallback address: %v", locationID, err)
		}
	}

	eventID, err := s.calendar.AddEvent(ctx, appointment, user, location)
	if err != nil {
		if errors.Is(err, googlecalendar.ErrDisabled) {
			return domain.CalendarSkipped
		}
		s.logger.Error("CalendarSync: failed to add event for appointment id=%d: %v", appointment.ID, err)
		return domain.CalendarFailed
	}

	if err := s.appointmentRepo.SetCalendarEventID(ctx, appointment.ID, eventID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			// бронирование отменили до сохранения ID, событие больше некому удалить
			s.logger.Warn("CalendarSync: appointment id=%d cancelled before event id=%s was saved, deleting event",
				appointment.ID, eventID)
			if err := s.calendar.DeleteEvent(ctx, eventID); err != nil {
				s.logger.Error("CalendarSync: failed to delete orphaned event id=%s: %v", eventID, err)
			}
			return domain.CalendarFailed
		}
		s.logger.Error("CalendarSync: event id=%s created but not saved for appointment id=%d: %v",
			eventID, appointment.ID, err)
		return domain.CalendarFailed
	}

	appointment.CalendarEventID = &eventID
	s.logger.Info("CalendarSync: appointment id=%d synced, event id=%s", appointment.ID, eventID)
	return domain.CalendarSynced
}

func (s *Service) remove(ctx context.Context, appointment *domain.Appointment) domain.CalendarSyncStatus {
	if appointment.CalendarEventID == nil || *appointment.CalendarEventID == "" {
		return domain.CalendarSkipped
	}

	eventID := *appointment.CalendarEventID
	if err := s.calendar.DeleteEvent(ctx, eventID); err != nil {
		if errors.Is(err, googlecalendar.ErrDisabled) {
			return domain.CalendarSkipped
		}
		s.logger.Error("CalendarSync: failed to delete event id=%s of appointment id=%d: %v",
			eventID, appointment.ID, err)
		return domain.CalendarFailed
	}

	s.logger.Info("CalendarSync: event id=%s of appointment id=%d deleted", eventID, appointment.ID)
	return domain.CalendarSynced
}
