package cancel_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/appointment"
	timeslotRepo "github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/timeslot"
)

const operation = "cancel_appointment"

// UseCase use case для отмены бронирования
type UseCase struct {
	appointmentRepo AppointmentRepository
	slotRepo        TimeSlotRepository
	calendar        CalendarSync
	notifier        Notifier
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	slotRepo TimeSlotRepository,
	calendar CalendarSync,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		calendar:        calendar,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute отменяет бронирование
// Экзаменационный слот удаляется, обычный снова становится свободным и видимым.
// Изменение слота и удаление бронирования выполняются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (result *Response, err error) {
	defer func() { uc.metrics.IncBookingOperation(operation, outcome(err)) }()

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CancelAppointment: appointment=%d, actor=%d, role=%s", req.AppointmentID, req.ActorID, req.ActorRole)

	var (
		cancelled *domain.Appointment
		action    = SlotNone
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		action = SlotNone

		// 1. Блокируем бронирование
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return fmt.Errorf("%w: id=%d", ErrAppointmentNotFound, req.AppointmentID)
			}
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		// 2. Пользователь отменяет только свои бронирования
		if req.ActorRole != domain.RoleAdmin && !appointment.IsOwnedBy(req.ActorID) {
			return fmt.Errorf("%w: appointment id=%d belongs to another user", ErrAccessDenied, appointment.ID)
		}

		// 3. Сначала слот, потом бронирование
		if appointment.TimeSlotID != nil {
			slotAction, err := uc.releaseSlot(txCtx, *appointment.TimeSlotID, appointment.IsExam)
			if err != nil {
				return err
			}
			action = slotAction
		}

		// 4. Удаляем бронирование
		if err := uc.appointmentRepo.Delete(txCtx, appointment.ID); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return fmt.Errorf("%w: id=%d", ErrAppointmentNotFound, appointment.ID)
			}
			return fmt.Errorf("%w: failed to delete appointment: %w", ErrInternal, err)
		}

		cancelled = appointment
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound), errors.Is(err, ErrAccessDenied):
			uc.logger.Warn("CancelAppointment: rejected: %v", err)
		default:
			uc.logger.Error("CancelAppointment: failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CancelAppointment: appointment id=%d cancelled, slot %s", cancelled.ID, action)

	// 5. Внешние побочные эффекты после коммита
	syncStatus := uc.calendar.RemoveAppointment(ctx, cancelled)
	uc.notifier.NotifyCancelled(ctx, cancelled)

	return &Response{
		AppointmentID: cancelled.ID,
		SlotAction:    action,
		CalendarSync:  syncStatus,
	}, nil
}

// releaseSlot удаляет слот экзамена или освобождает слот обычного занятия
func (uc *UseCase) releaseSlot(ctx context.Context, slotID int64, isExam bool) (SlotAction, error) {
	// Блокируем слот
	if _, err := uc.slotRepo.GetByID(ctx, slotID); err != nil {
		if errors.Is(err, timeslotRepo.ErrTimeSlotNotFound) {
			return SlotNone, nil
		}
		return SlotNone, fmt.Errorf("%w: failed to get time slot: %w", ErrInternal, err)
	}

	if isExam {
		if err := uc.slotRepo.Delete(ctx, slotID); err != nil {
			return SlotNone, fmt.Errorf("%w: failed to delete exam slot id=%d: %w", ErrInternal, slotID, err)
		}
		return SlotDeleted, nil
	}

	if err := uc.slotRepo.Release(ctx, slotID); err != nil {
		return SlotNone, fmt.Errorf("%w: failed to release slot id=%d: %w", ErrInternal, slotID, err)
	}
	return SlotReleased, nil
}
