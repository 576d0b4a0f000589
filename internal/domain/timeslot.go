package domain

import "time"

// TimeSlotStatus represents the booking state of a time slot
type TimeSlotStatus string

const (
	SlotAvailable TimeSlotStatus = "AVAILABLE"
	SlotBooked    TimeSlotStatus = "BOOKED"
)

// IsValid returns true if the status is one of the known values
func (s TimeSlotStatus) IsValid() bool {
	return s == SlotAvailable || s == SlotBooked
}

// TimeSlot represents a bookable window [StartTime, EndTime)
type TimeSlot struct {
	ID            int64
	StartTime     time.Time
	EndTime       time.Time
	Status        TimeSlotStatus
	IsVisible     bool
	AppointmentID *int64 // set only while the slot is BOOKED
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAvailable returns true if the slot can be booked
func (s *TimeSlot) IsAvailable() bool {
	return s.Status == SlotAvailable
}

// IsBooked returns true if the slot is held by an appointment
func (s *TimeSlot) IsBooked() bool {
	return s.Status == SlotBooked
}

// Book marks the slot as held by the given appointment and hides it from listings
func (s *TimeSlot) Book(appointmentID int64) {
	s.Status = SlotBooked
	s.IsVisible = false
	s.AppointmentID = &appointmentID
}

// Release returns the slot to the available pool
func (s *TimeSlot) Release() {
	s.Status = SlotAvailable
	s.IsVisible = true
	s.AppointmentID = nil
}

// Duration returns the length of the slot
func (s *TimeSlot) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
