package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/appointment"
	locationRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/location"
	timeslotRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/timeslot"
	userRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/user"
)

const operation = "create_appointment"

// UseCase use case для бронирования администратором с созданием нового слота
type UseCase struct {
	slotRepo        TimeSlotRepository
	appointmentRepo AppointmentRepository
	userRepo        UserRepository
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
	userRepo UserRepository,
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
		userRepo:        userRepo,
		locationRepo:    locationRepo,
		calendar:        calendar,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute создает занятый скрытый слот и бронирование на него
func (uc *UseCase) Execute(ctx context.Context, req *Request) (result *domain.BookingResult, err error) {
	defer func() { uc.metrics.IncBookingOperation(operation, outcome(err)) }()

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	start := domain.TruncateInstant(req.StartTime)
	end := domain.TruncateInstant(req.EndTime)

	uc.logger.Info("CreateAppointment: user=%d, start=%s, end=%s, exam=%t", req.UserID, start, end, req.IsExam)

	// 2. Проверяем пользователя
	if _, err := uc.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateAppointment: user id=%d not found", req.UserID)
			return nil, fmt.Errorf("%w: id=%d", ErrUserNotFound, req.UserID)
		}
		uc.logger.Error("CreateAppointment: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	// 3. Проверяем локацию из справочника
	if named, ok := req.Location.(domain.NamedLocation); ok {
		if _, err := uc.locationRepo.GetByID(ctx, named.ID); err != nil {
			if errors.Is(err, locationRepo.ErrLocationNotFound) {
				uc.logger.Warn("CreateAppointment: location id=%d not found", named.ID)
				return nil, fmt.Errorf("%w: id=%d", ErrLocationNotFound, named.ID)
			}
			uc.logger.Error("CreateAppointment: failed to get location id=%d: %v", named.ID, err)
			return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
		}
	}

	var created *domain.Appointment

	// 4. Слот и бронирование в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Проверка пересечений
		existing, err := uc.slotRepo.GetIntersecting(txCtx, start, end)
		if err != nil {
			return fmt.Errorf("%w: failed to get intersecting slots: %w", ErrInternal, err)
		}
		if conflict := domain.FindConflict(start, end, existing); conflict != nil {
			return domain.NewOverlapError(conflict, ErrSlotOverlap)
		}

		// 4.2. Слот сразу занят и скрыт из списка свободных
		slot, err := uc.slotRepo.Create(txCtx, &domain.TimeSlot{
			StartTime: start,
			EndTime:   end,
			Status:    domain.SlotBooked,
			IsVisible: false,
		})
		if err != nil {
			if errors.Is(err, timeslotRepo.ErrOverlap) {
				return fmt.Errorf("%w: %w", ErrSlotOverlap, err)
			}
			return fmt.Errorf("%w: failed to create time slot: %w", ErrInternal, err)
		}

		// 4.3. Бронирование
		appointment, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			UserID:     req.UserID,
			TimeSlotID: &slot.ID,
			Location:   req.Location,
			StartTime:  start,
			EndTime:    end,
			IsExam:     req.IsExam,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrReferenceNotFound) {
				return fmt.Errorf("%w: id=%d", ErrUserNotFound, req.UserID)
			}
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		// 4.4. Связываем слот с бронированием
		if err := uc.slotRepo.MarkBooked(txCtx, slot.ID, appointment.ID); err != nil {
			return fmt.Errorf("%w: failed to link slot: %w", ErrInternal, err)
		}

		created = appointment
		return nil
	})
	if err != nil {
		err = uc.describeOverlap(ctx, start, end, err)
		switch {
		case errors.Is(err, ErrSlotOverlap), errors.Is(err, ErrUserNotFound):
			uc.logger.Warn("CreateAppointment: rejected: %v", err)
		default:
			uc.logger.Error("CreateAppointment: failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: appointment id=%d created on slot id=%d", created.ID, *created.TimeSlotID)

	// 5. Внешние побочные эффекты после коммита
	syncStatus := uc.calendar.AddAppointment(ctx, created)
	uc.notifier.NotifyBooked(ctx, created)

	return &domain.BookingResult{Appointment: created, CalendarSync: syncStatus}, nil
}

// describeOverlap дополняет ошибку EXCLUDE ограничения окном слота, вставленного параллельно
// Транзакция к этому моменту откатана, поэтому чтение идет без блокировки
func (uc *UseCase) describeOverlap(ctx context.Context, start, end time.Time, err error) error {
	var overlap *domain.OverlapError
	if !errors.Is(err, timeslotRepo.ErrOverlap) || errors.As(err, &overlap) {
		return err
	}

	existing, lookupErr := uc.slotRepo.GetIntersecting(ctx, start, end)
	if lookupErr != nil {
		uc.logger.Warn("CreateAppointment: failed to read conflicting slot: %v", lookupErr)
		return err
	}
	conflict := domain.FindConflict(start, end, existing)
	if conflict == nil {
		return err
	}
	return domain.NewOverlapError(conflict, err)
}
