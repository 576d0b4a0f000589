package domain

import (
	"fmt"
	"strings"
	"time"
)

// PickupLocation is where a lesson starts.
// It is either a NamedLocation, a CustomAddress, or nil when the appointment has none.
type PickupLocation interface {
	isPickupLocation()
}

// NamedLocation references a location from the locations catalog
type NamedLocation struct {
	ID int64
}

func (NamedLocation) isPickupLocation() {}

// CustomAddress is a free-form pickup address supplied by the student
type CustomAddress struct {
	Street      string
	HouseNumber string
	PostalCode  string
	City        string
}

func (CustomAddress) isPickupLocation() {}

// IsComplete returns true if every address field is filled in
func (a CustomAddress) IsComplete() bool {
	return strings.TrimSpace(a.Street) != "" &&
		strings.TrimSpace(a.HouseNumber) != "" &&
		strings.TrimSpace(a.PostalCode) != "" &&
		strings.TrimSpace(a.City) != ""
}

// String formats the address as "Street HouseNumber, PostalCode City"
func (a CustomAddress) String() string {
	return fmt.Sprintf("%s %s, %s %s", a.Street, a.HouseNumber, a.PostalCode, a.City)
}

// Appointment represents a lesson or exam booked against a time slot
type Appointment struct {
	ID         int64
	UserID     int64
	TimeSlotID *int64
	Location   PickupLocation

	// Denormalized copy of the slot window
	StartTime time.Time
	EndTime   time.Time

	IsExam          bool
	CalendarEventID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy returns true if the appointment belongs to the user
func (a *Appointment) IsOwnedBy(userID int64) bool {
	return a.UserID == userID
}

// NamedLocationID returns the catalog location id, if the pickup is a named location
func (a *Appointment) NamedLocationID() (int64, bool) {
	if loc, ok := a.Location.(NamedLocation); ok {
		return loc.ID, true
	}
	return 0, false
}

// CustomPickup returns the custom address, if the pickup is one
func (a *Appointment) CustomPickup() (CustomAddress, bool) {
	addr, ok := a.Location.(CustomAddress)
	return addr, ok
}

// PickupAddress renders the pickup point for humans.
// named is the catalog entry for a NamedLocation and may be nil; fallback is used when there is no address.
func (a *Appointment) PickupAddress(named *Location, fallback string) string {
	if _, ok := a.NamedLocationID(); ok && named != nil {
		return named.Address()
	}
	if addr, ok := a.CustomPickup(); ok {
		return addr.String()
	}
	return fallback
}
