package googlecalendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
)

// Client клиент Google Calendar API, авторизованный сервисным аккаунтом
type Client struct {
	service    *calendar.Service
	calendarID string
	timeZone   string
	schoolName string
	log        Logger
}

// NewClient создает клиент с авторизацией по JWT сервисного аккаунта
func NewClient(ctx context.Context, cfg Config, log Logger) (*Client, error) {
	if cfg.CalendarID == "" || cfg.ClientEmail == "" || cfg.PrivateKey == "" {
		return nil, fmt.Errorf("%w: calendar_id, client_email and private_key are required", ErrInvalidConfig)
	}

	jwtConfig := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
		Scopes:     []string{calendar.CalendarScope},
		TokenURL:   google.JWTTokenURL,
	}

	httpClient := jwtConfig.Client(ctx)
	httpClient.Timeout = cfg.Timeout

	service, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create calendar service: %v", ErrInvalidConfig, err)
	}

	return NewWithService(service, cfg, log), nil
}

// NewWithService создает клиент поверх готового calendar.Service
func NewWithService(service *calendar.Service, cfg Config, log Logger) *Client {
	timeZone := cfg.TimeZone
	if timeZone == "" {
		timeZone = DefaultTimeZone
	}

	return &Client{
		service:    service,
		calendarID: cfg.CalendarID,
		timeZone:   timeZone,
		schoolName: cfg.SchoolName,
		log:        log,
	}
}

// AddEvent создает событие для бронирования и возвращает его ID
// location может быть nil, если у бронирования нет точки из справочника
func (c *Client) AddEvent(ctx context.Context, appointment *domain.Appointment, user *domain.User, location *domain.Location) (string, error) {
	event := BuildEvent(appointment, user, location, c.timeZone, c.schoolName)

	created, err := c.service.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: insert event for appointment id=%d: %v", ErrRequest, appointment.ID, err)
	}

	c.log.Info("GoogleCalendar: event id=%s created for appointment id=%d", created.Id, appointment.ID)
	return created.Id, nil
}

// DeleteEvent удаляет событие
// Уже удаленное событие (404, 410) не считается ошибкой
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	err := c.service.Events.Delete(c.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
			c.log.Warn("GoogleCalendar: event id=%s already deleted", eventID)
			return nil
		}
		return fmt.Errorf("%w: delete event id=%s: %v", ErrRequest, eventID, err)
	}

	c.log.Info("GoogleCalendar: event id=%s deleted", eventID)
	return nil
}

// BuildEvent собирает событие календаря
// Название: "Examen - Имя Фамилия" или "Rijles - Имя Фамилия"
// Место: адрес точки из справочника, иначе свой адрес, иначе название школы
func BuildEvent(appointment *domain.Appointment, user *domain.User, location *domain.Location, timeZone, schoolName string) *calendar.Event {
	prefix := domain.LessonSummaryPrefix
	if appointment.IsExam {
		prefix = domain.ExamSummaryPrefix
	}

	return &calendar.Event{
		Summary: fmt.Sprintf("%s - %s", prefix, user.FullName()),
		Start: &calendar.EventDateTime{
			DateTime: appointment.StartTime.UTC().Format(time.RFC3339),
			TimeZone: timeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: appointment.EndTime.UTC().Format(time.RFC3339),
			TimeZone: timeZone,
		},
		Location: appointment.PickupAddress(location, schoolName),
	}
}
