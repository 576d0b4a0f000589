package timeslots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	timeslotRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/timeslot"
	"github.com/m04kA/DrivingSchool-BookingService/internal/service/timeslots/models"
)

// Service сервис чтения и удаления слотов
type Service struct {
	slotRepo     TimeSlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo TimeSlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// SetTimeProvider подменяет источник текущего времени
func (s *Service) SetTimeProvider(tp TimeProvider) {
	s.timeProvider = tp
}

// ListAvailable возвращает свободные видимые слоты, начинающиеся не раньше текущего момента
func (s *Service) ListAvailable(ctx context.Context) (*models.TimeSlotListResponse, error) {
	now := s.timeProvider.Now()

	slots, err := s.slotRepo.ListAvailable(ctx, now)
	if err != nil {
		s.logger.Error("ListAvailable: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAvailable - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAvailable: found %d available slots from %s", len(slots), now.UTC().Format(time.RFC3339))
	return models.FromDomainTimeSlotList(slots), nil
}

// ListAll возвращает все слоты по возрастанию начала
func (s *Service) ListAll(ctx context.Context) (*models.TimeSlotListResponse, error) {
	slots, err := s.slotRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTimeSlotList(slots), nil
}

// GetByID возвращает слот по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TimeSlotResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrTimeSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTimeSlot(slot), nil
}

// GetByStartTime возвращает слот, начинающийся ровно в указанный момент (с точностью до секунды)
func (s *Service) GetByStartTime(ctx context.Context, startTime time.Time) (*models.TimeSlotResponse, error) {
	if startTime.IsZero() {
		return nil, fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	start := domain.TruncateInstant(startTime)
	slot, err := s.slotRepo.GetByStartTime(ctx, start)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrTimeSlotNotFound) {
			s.logger.Warn("GetByStartTime: no slot starts at %s", start.Format(time.RFC3339))
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByStartTime: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByStartTime - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTimeSlot(slot), nil
}

// DeleteTimeSlot удаляет свободный слот
// Занятый слот удалить нельзя: бронирование осталось бы без слота
func (s *Service) DeleteTimeSlot(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	s.logger.Info("DeleteTimeSlot: deleting slot id=%d", id)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, timeslotRepo.ErrTimeSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: DeleteTimeSlot - get slot: %w", ErrInternal, err)
		}

		if slot.IsBooked() {
			return ErrSlotBooked
		}

		if err := s.slotRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, timeslotRepo.ErrTimeSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: DeleteTimeSlot - delete slot: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotFound), errors.Is(err, ErrSlotBooked):
			s.logger.Warn("DeleteTimeSlot: slot id=%d not deleted: %v", id, err)
		default:
			s.logger.Error("DeleteTimeSlot: failed for slot id=%d: %v", id, err)
		}
		return err
	}

	s.logger.Info("DeleteTimeSlot: slot id=%d deleted", id)
	return nil
}
