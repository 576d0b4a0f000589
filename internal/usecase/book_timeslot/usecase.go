package book_timeslot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/appointment"
	locationRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/location"
	timeslotRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/timeslot"
)

const operation = "book_timeslot"

// UseCase use case для бронирования существующего слота пользователем
type UseCase struct {
	slotRepo        TimeSlotRepository
	appointmentRepo AppointmentRepository
	locationRepo    LocationRepository
	calendar        CalendarSync
	notifier        Notifier
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo TimeSlotRepository,
	appointmentRepo AppointmentRepository,
	locationRepo LocationRepository,
	calendar CalendarSync,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		locationRepo:    locationRepo,
		calendar:        calendar,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute бронирует слот
// Слот читается с блокировкой (FOR UPDATE) в сериализуемой транзакции:
// из двух параллельных запросов на один слот коммитится только один,
// второй после повтора видит BOOKED и получает ErrSlotNotAvailable
func (uc *UseCase) Execute(ctx context.Context, req *Request) (result *domain.BookingResult, err error) {
	defer func() { uc.metrics.IncBookingOperation(operation, outcome(err)) }()

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookTimeSlot: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("BookTimeSlot: slot=%d, user=%d", req.TimeSlotID, req.UserID)

	// 2. Проверяем локацию из справочника
	if locationID, ok := req.Location.(domain.NamedLocation); ok {
		if _, err := uc.locationRepo.GetByID(ctx, locationID.ID); err != nil {
			if errors.Is(err, locationRepo.ErrLocationNotFound) {
				uc.logger.Warn("BookTimeSlot: location id=%d not found", locationID.ID)
				return nil, fmt.Errorf("%w: id=%d", ErrLocationNotFound, locationID.ID)
			}
			uc.logger.Error("BookTimeSlot: failed to get location id=%d: %v", locationID.ID, err)
			return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
		}
	}

	var booked *domain.Appointment

	// 3. Бронирование в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем слот
		slot, err := uc.slotRepo.GetByID(txCtx, req.TimeSlotID)
		if err != nil {
			if errors.Is(err, timeslotRepo.ErrTimeSlotNotFound) {
				return fmt.Errorf("%w: slot id=%d not found", ErrSlotNotAvailable, req.TimeSlotID)
			}
			return fmt.Errorf("%w: failed to get time slot: %w", ErrInternal, err)
		}

		if !slot.IsAvailable() {
			return fmt.Errorf("%w: slot id=%d is %s", ErrSlotNotAvailable, slot.ID, slot.Status)
		}

		// 3.2. Создаем бронирование с окном слота
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			UserID:     req.UserID,
			TimeSlotID: &slot.ID,
			Location:   req.Location,
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
			IsExam:     false,
		})
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrSlotTaken):
				return fmt.Errorf("%w: slot id=%d already has an appointment", ErrSlotNotAvailable, slot.ID)
			case errors.Is(err, appointmentRepo.ErrReferenceNotFound):
				return fmt.Errorf("%w: id=%d", ErrUserNotFound, req.UserID)
			}
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		// 3.3. Помечаем слот занятым
		if err := uc.slotRepo.MarkBooked(txCtx, slot.ID, created.ID); err != nil {
			return fmt.Errorf("%w: failed to mark slot booked: %w", ErrInternal, err)
		}

		booked = created
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable), errors.Is(err, ErrUserNotFound):
			uc.logger.Warn("BookTimeSlot: rejected: %v", err)
		default:
			uc.logger.Error("BookTimeSlot: failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("BookTimeSlot: appointment id=%d booked on slot id=%d", booked.ID, req.TimeSlotID)

	// 4. Внешние побочные эффекты после коммита
	syncStatus := uc.calendar.AddAppointment(ctx, booked)
	uc.notifier.NotifyBooked(ctx, booked)

	return &domain.BookingResult{Appointment: booked, CalendarSync: syncStatus}, nil
}
