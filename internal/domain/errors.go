package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidLocation is returned when a pickup location is incomplete or too long
	ErrInvalidLocation = errors.New("domain: invalid pickup location")
)

// OverlapError reports the existing slot window a new slot collides with.
// It unwraps to Err, so callers keep matching their own sentinel with errors.Is.
type OverlapError struct {
	Start time.Time
	End   time.Time
	Err   error
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%v: conflicts with [%s, %s)",
		e.Err, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

func (e *OverlapError) Unwrap() error {
	return e.Err
}

// NewOverlapError builds an OverlapError for the conflicting slot
func NewOverlapError(conflict *TimeSlot, err error) *OverlapError {
	return &OverlapError{Start: conflict.StartTime, End: conflict.EndTime, Err: err}
}

// ValidatePickupLocation checks the structural validity of a pickup location.
// Existence of a named location is checked by the caller against the catalog.
func ValidatePickupLocation(loc PickupLocation) error {
	switch l := loc.(type) {
	case nil:
		return nil
	case NamedLocation:
		if l.ID <= 0 {
			return fmt.Errorf("%w: location id must be positive", ErrInvalidLocation)
		}
		return nil
	case CustomAddress:
		if !l.IsComplete() {
			return fmt.Errorf("%w: street, house number, postal code and city are required", ErrInvalidLocation)
		}
		for _, field := range []string{l.Street, l.HouseNumber, l.PostalCode, l.City} {
			if len(strings.TrimSpace(field)) > MaxAddressFieldLength {
				return fmt.Errorf("%w: address field exceeds %d characters", ErrInvalidLocation, MaxAddressFieldLength)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported location %T", ErrInvalidLocation, loc)
	}
}
