package create_timeslot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	timeslotRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/timeslot"
)

const operation = "create_timeslot"

// UseCase use case для создания свободного слота администратором
type UseCase struct {
	slotRepo  TimeSlotRepository
	txManager TransactionManager
	metrics   Metrics
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo TimeSlotRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:  slotRepo,
		txManager: txManager,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute создает слот в статусе AVAILABLE
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (result *domain.TimeSlot, err error) {
	defer func() { uc.metrics.IncBookingOperation(operation, outcome(err)) }()

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateTimeSlot: validation failed: %v", err)
		return nil, err
	}

	start := domain.TruncateInstant(req.StartTime)
	end := domain.TruncateInstant(req.EndTime)
	isVisible := true
	if req.IsVisible != nil {
		isVisible = *req.IsVisible
	}

	uc.logger.Info("CreateTimeSlot: start=%s, end=%s, visible=%t", start, end, isVisible)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Ищем пересекающиеся слоты с блокировкой
		existing, err := uc.slotRepo.GetIntersecting(txCtx, start, end)
		if err != nil {
			return fmt.Errorf("%w: failed to get intersecting slots: %w", ErrInternal, err)
		}

		if conflict := domain.FindConflict(start, end, existing); conflict != nil {
			uc.logger.Warn("CreateTimeSlot: overlaps slot id=%d [%s, %s)", conflict.ID, conflict.StartTime, conflict.EndTime)
			return domain.NewOverlapError(conflict, ErrSlotOverlap)
		}

		// 2. Создаем слот
		created, err := uc.slotRepo.Create(txCtx, &domain.TimeSlot{
			StartTime: start,
			EndTime:   end,
			Status:    domain.SlotAvailable,
			IsVisible: isVisible,
		})
		if err != nil {
			// Параллельная вставка прошла раньше нас и сработало EXCLUDE ограничение
			if errors.Is(err, timeslotRepo.ErrOverlap) {
				return fmt.Errorf("%w: %w", ErrSlotOverlap, err)
			}
			return fmt.Errorf("%w: failed to create time slot: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		err = uc.describeOverlap(ctx, start, end, err)
		if !errors.Is(err, ErrSlotOverlap) {
			uc.logger.Error("CreateTimeSlot: failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CreateTimeSlot: created time slot id=%d", result.ID)
	return result, nil
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
		uc.logger.Warn("CreateTimeSlot: failed to read conflicting slot: %v", lookupErr)
		return err
	}
	conflict := domain.FindConflict(start, end, existing)
	if conflict == nil {
		return err
	}
	return domain.NewOverlapError(conflict, err)
}
