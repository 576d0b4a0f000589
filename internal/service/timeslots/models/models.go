package models

import (
	"time"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
)

// TimeSlotResponse ответ с данными слота
type TimeSlotResponse struct {
	ID            int64     `json:"id"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Status        string    `json:"status"`
	IsVisible     bool      `json:"isVisible"`
	AppointmentID *int64    `json:"appointmentId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TimeSlotListResponse ответ со списком слотов
type TimeSlotListResponse struct {
	TimeSlots []TimeSlotResponse `json:"timeSlots"`
}

// FromDomainTimeSlot конвертирует domain модель в DTO
func FromDomainTimeSlot(s *domain.TimeSlot) *TimeSlotResponse {
	if s == nil {
		return nil
	}

	return &TimeSlotResponse{
		ID:            s.ID,
		StartTime:     s.StartTime.UTC(),
		EndTime:       s.EndTime.UTC(),
		Status:        string(s.Status),
		IsVisible:     s.IsVisible,
		AppointmentID: s.AppointmentID,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// FromDomainTimeSlotList конвертирует список domain моделей в DTO
func FromDomainTimeSlotList(slots []*domain.TimeSlot) *TimeSlotListResponse {
	resp := &TimeSlotListResponse{
		TimeSlots: make([]TimeSlotResponse, 0, len(slots)),
	}

	for _, slot := range slots {
		if slotResp := FromDomainTimeSlot(slot); slotResp != nil {
			resp.TimeSlots = append(resp.TimeSlots, *slotResp)
		}
	}

	return resp
}
