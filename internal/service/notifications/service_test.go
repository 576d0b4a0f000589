package notifications

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	"github.com/m04kA/DrivingSchool-BookingService/internal/integrations/mailer"
)

type mailerRecorder struct {
	sent []mailer.Message
	err  error
}

func (m *mailerRecorder) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type userRepoStub struct {
	user *domain.User
	err  error
}

func (s userRepoStub) GetByID(context.Context, int64) (*domain.User, error) { return s.user, s.err }

type locationRepoStub struct{ location *domain.Location }

func (s locationRepoStub) GetByID(context.Context, int64) (*domain.Location, error) {
	if s.location == nil {
		return nil, errors.New("location not found")
	}
	return s.location, nil
}

type metricsRecorder struct{ calls []string }

func (m *metricsRecorder) IncNotification(kind, result string) {
	m.calls = append(m.calls, kind+":"+result)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var student = &domain.User{ID: 1, FirstName: "Jan", LastName: "Peeters", Email: "jan@example.com"}

func appointment() *domain.Appointment {
	start := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	return &domain.Appointment{
		ID:        5,
		UserID:    1,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Location:  domain.NamedLocation{ID: 2},
	}
}

func TestNotifyBooked(t *testing.T) {
	m := &mailerRecorder{}
	rec := &metricsRecorder{}
	brussels, err := time.LoadLocation("Europe/Brussels")
	require.NoError(t, err)

	loc := &domain.Location{ID: 2, Name: "Station", Street: "Stationsplein", HouseNumber: "1", PostalCode: "3000", City: "Leuven"}
	svc := NewService(m, userRepoStub{user: student}, locationRepoStub{location: loc}, rec, brussels, "Rijschool", time.Second, nopLogger{})

	svc.NotifyBooked(context.Background(), appointment())
	svc.Wait()

	require.Len(t, m.sent, 1)
	msg := m.sent[0]
	assert.Equal(t, "jan@example.com", msg.To)
	assert.Equal(t, "Bevestiging rijles 10/01/2025 10:00", msg.Subject)
	assert.Contains(t, msg.TextBody, "van 10:00 tot 10:30")
	assert.Contains(t, msg.TextBody, "Stationsplein 1, 3000 Leuven")
	assert.Equal(t, []string{"booked:sent"}, rec.calls)
}

func TestNotifyCancelled_Exam(t *testing.T) {
	m := &mailerRecorder{}
	svc := NewService(m, userRepoStub{user: student}, locationRepoStub{}, &metricsRecorder{}, nil, "Rijschool", 0, nopLogger{})

	a := appointment()
	a.IsExam = true
	svc.NotifyCancelled(context.Background(), a)
	svc.Wait()

	require.Len(t, m.sent, 1)
	assert.Equal(t, "Annulering examen 10/01/2025 09:00", m.sent[0].Subject)
	assert.Contains(t, m.sent[0].TextBody, "geannuleerd")
}

func TestNotify_Outcomes(t *testing.T) {
	t.Run("disabled mailer is skipped", func(t *testing.T) {
		rec := &metricsRecorder{}
		svc := NewService(mailer.Disabled{}, userRepoStub{user: student}, locationRepoStub{}, rec, nil, "", 0, nopLogger{})

		svc.NotifyBooked(context.Background(), appointment())
		svc.Wait()

		assert.Equal(t, []string{"booked:skipped"}, rec.calls)
	})

	t.Run("send failure", func(t *testing.T) {
		rec := &metricsRecorder{}
		svc := NewService(&mailerRecorder{err: mailer.ErrSend}, userRepoStub{user: student}, locationRepoStub{}, rec, nil, "", 0, nopLogger{})

		svc.NotifyCancelled(context.Background(), appointment())
		svc.Wait()

		assert.Equal(t, []string{"cancelled:failed"}, rec.calls)
	})

	t.Run("unknown user", func(t *testing.T) {
		m := &mailerRecorder{}
		rec := &metricsRecorder{}
		svc := NewService(m, userRepoStub{err: errors.New("not found")}, locationRepoStub{}, rec, nil, "", 0, nopLogger{})

		svc.NotifyBooked(context.Background(), appointment())
		svc.Wait()

		assert.Empty(t, m.sent)
		assert.Equal(t, []string{"booked:failed"}, rec.calls)
	})
}

type hangingMailer struct{}

func (hangingMailer) Send(ctx context.Context, _ mailer.Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestNotify_DoesNotBlockCaller(t *testing.T) {
	rec := &metricsRecorder{}
	svc := NewService(hangingMailer{}, userRepoStub{user: student}, locationRepoStub{}, rec, nil, "", 200*time.Millisecond, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	started := time.Now()
	svc.NotifyBooked(ctx, appointment())
	cancel()

	assert.Less(t, time.Since(started), 100*time.Millisecond)

	svc.Wait()
	assert.GreaterOrEqual(t, time.Since(started), 200*time.Millisecond)
	assert.Equal(t, []string{"booked:failed"}, rec.calls)
}
