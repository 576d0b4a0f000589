package notifications

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	"github.com/m04kA/DrivingSchool-BookingService/internal/integrations/mailer"
)

// DefaultTimeout ограничение на отправку одного письма
const DefaultTimeout = 5 * time.Second

const (
	kindBooked    = "booked"
	kindCancelled = "cancelled"

	resultSent    = "sent"
	resultFailed  = "failed"
	resultSkipped = "skipped"
)

// Service отправляет письма о бронированиях
// Отправка best-effort и в фоне: запрос не ждет SMTP,
// ошибки логируются и учитываются в метриках
type Service struct {
	mailer       Mailer
	userRepo     UserRepository
	locationRepo LocationRepository
	metrics      Metrics
	timeZone     *time.Location
	schoolName   string
	timeout      time.Duration
	logger       Logger

	pending sync.WaitGroup
}

// NewService создает сервис уведомлений
// timeZone задает часовой пояс, в котором время показывается в письмах
func NewService(
	mailer Mailer,
	userRepo UserRepository,
	locationRepo LocationRepository,
	metrics Metrics,
	timeZone *time.Location,
	schoolName string,
	timeout time.Duration,
	logger Logger,
) *Service {
	if timeZone == nil {
		timeZone = time.UTC
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		mailer:       mailer,
		userRepo:     userRepo,
		locationRepo: locationRepo,
		metrics:      metrics,
		timeZone:     timeZone,
		schoolName:   schoolName,
		timeout:      timeout,
		logger:       logger,
	}
}

// NotifyBooked ставит в очередь подтверждение бронирования
func (s *Service) NotifyBooked(ctx context.Context, appointment *domain.Appointment) {
	s.dispatch(ctx, kindBooked, appointment, bookedMessage)
}

// NotifyCancelled ставит в очередь уведомление об отмене
func (s *Service) NotifyCancelled(ctx context.Context, appointment *domain.Appointment) {
	s.dispatch(ctx, kindCancelled, appointment, cancelledMessage)
}

// Wait ждет завершения всех писем, отправляемых в фоне
// Каждое письмо ограничено timeout, поэтому ожидание конечно
func (s *Service) Wait() {
	s.pending.Wait()
}

func (s *Service) dispatch(
	ctx context.Context,
	kind string,
	appointment *domain.Appointment,
	build func(*domain.User, appointmentView) mailer.Message,
) {
	// копия: вызывающий может менять бронирование после возврата
	snapshot := *appointment
	ctx = context.WithoutCancel(ctx)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.notify(ctx, kind, &snapshot, build)
	}()
}

func (s *Service) notify(
	ctx context.Context,
	kind string,
	appointment *domain.Appointment,
	build func(*domain.User, appointmentView) mailer.Message,
) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, appointment.UserID)
	if err != nil {
		s.logger.Error("Notify: failed to get user id=%d for appointment id=%d: %v", appointment.UserID, appointment.ID, err)
		s.metrics.IncNotification(kind, resultFailed)
		return
	}

	var location *domain.Location
	if locationID, ok := appointment.NamedLocationID(); ok {
		location, err = s.locationRepo.GetByID(ctx, locationID)
		if err != nil {
			s.logger.Warn("Notify: failed to get location id=%d: %v", locationID, err)
		}
	}

	msg := build(user, newAppointmentView(appointment, location, s.timeZone, s.schoolName))

	if err := s.mailer.Send(ctx, msg); err != nil {
		if errors.Is(err, mailer.ErrDisabled) {
			s.metrics.IncNotification(kind, resultSkipped)
			return
		}
		s.logger.Error("Notify: failed to send %s mail for appointment id=%d: %v", kind, appointment.ID, err)
		s.metrics.IncNotification(kind, resultFailed)
		return
	}

	s.logger.Info("Notify: %s mail sent for appointment id=%d to user id=%d", kind, appointment.ID, user.ID)
	s.metrics.IncNotification(kind, resultSent)
}
