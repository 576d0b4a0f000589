package models

import (
	"errors"
	"time"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
)

var (
	// ErrAmbiguousLocation возвращается, когда указаны и locationId, и customPickup
	ErrAmbiguousLocation = errors.New("either locationId or customPickup may be set, not both")
)

// Request модели

// PickupLocation место начала занятия
// Указывается либо locationId из справочника, либо customPickup, либо ничего
type PickupLocation struct {
	LocationID   *int64        `json:"locationId,omitempty"`
	CustomPickup *CustomPickup `json:"customPickup,omitempty"`
}

// CustomPickup произвольный адрес
type CustomPickup struct {
	Street      string `json:"street"`
	HouseNumber string `json:"houseNumber"`
	PostalCode  string `json:"postalCode"`
	City        string `json:"city"`
}

// UpdateAppointmentRequest запрос на изменение бронирования
// Изменяемое поле только одно - место начала занятия
type UpdateAppointmentRequest struct {
	Location *PickupLocation `json:"location"`
}

// ToDomain конвертирует DTO в вариант domain.PickupLocation
func (p *PickupLocation) ToDomain() (domain.PickupLocation, error) {
	if p == nil {
		return nil, nil
	}

	switch {
	case p.LocationID != nil && p.CustomPickup != nil:
		return nil, ErrAmbiguousLocation
	case p.LocationID != nil:
		return domain.NamedLocation{ID: *p.LocationID}, nil
	case p.CustomPickup != nil:
		return domain.CustomAddress{
			Street:      p.CustomPickup.Street,
			HouseNumber: p.CustomPickup.HouseNumber,
			PostalCode:  p.CustomPickup.PostalCode,
			City:        p.CustomPickup.City,
		}, nil
	default:
		return nil, nil
	}
}

// Response модели

// AppointmentResponse ответ с данными бронирования
type AppointmentResponse struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	TimeSlotID      *int64          `json:"timeSlotId"`
	StartTime       time.Time       `json:"startTime"`
	EndTime         time.Time       `json:"endTime"`
	IsExam          bool            `json:"isExam"`
	Location        *PickupLocation `json:"location,omitempty"`
	CalendarEventID *string         `json:"calendarEventId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком бронирований
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// BookingResultResponse ответ на создание бронирования
type BookingResultResponse struct {
	Appointment  AppointmentResponse `json:"appointment"`
	CalendarSync string              `json:"calendarSync"`
}

// Методы конвертации

// FromDomainLocation конвертирует вариант места в DTO
func FromDomainLocation(loc domain.PickupLocation) *PickupLocation {
	switch l := loc.(type) {
	case domain.NamedLocation:
		id := l.ID
		return &PickupLocation{LocationID: &id}
	case domain.CustomAddress:
		return &PickupLocation{CustomPickup: &CustomPickup{
			Street:      l.Street,
			HouseNumber: l.HouseNumber,
			PostalCode:  l.PostalCode,
			City:        l.City,
		}}
	default:
		return nil
	}
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		TimeSlotID:      a.TimeSlotID,
		StartTime:       a.StartTime.UTC(),
		EndTime:         a.EndTime.UTC(),
		IsExam:          a.IsExam,
		Location:        FromDomainLocation(a.Location),
		CalendarEventID: a.CalendarEventID,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if aResp := FromDomainAppointment(a); aResp != nil {
			resp.Appointments = append(resp.Appointments, *aResp)
		}
	}

	return resp
}

// FromDomainBookingResult конвертирует результат бронирования в DTO
func FromDomainBookingResult(r *domain.BookingResult) *BookingResultResponse {
	if r == nil {
		return nil
	}

	resp := &BookingResultResponse{CalendarSync: string(r.CalendarSync)}
	if a := FromDomainAppointment(r.Appointment); a != nil {
		resp.Appointment = *a
	}
	return resp
}
