package appointment

import (
	"database/sql"
	"fmt"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
)

// locationColumns плоское представление места встречи в таблице appointments
type locationColumns struct {
	locationID  *int64
	street      *string
	houseNumber *string
	postalCode  *string
	city        *string
}

func flattenLocation(location domain.PickupLocation) (locationColumns, error) {
	switch loc := location.(type) {
	case nil:
		return locationColumns{}, nil
	case domain.NamedLocation:
		id := loc.ID
		return locationColumns{locationID: &id}, nil
	case domain.CustomAddress:
		return locationColumns{
			street:      &loc.Street,
			houseNumber: &loc.HouseNumber,
			postalCode:  &loc.PostalCode,
			city:        &loc.City,
		}, nil
	default:
		return locationColumns{}, fmt.Errorf("%w: unsupported location type %T", ErrInvalidLocation, location)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a               domain.Appointment
		timeSlotID      sql.NullInt64
		locationID      sql.NullInt64
		street          sql.NullString
		houseNumber     sql.NullString
		postalCode      sql.NullString
		city            sql.NullString
		calendarEventID sql.NullString
	)

	err := row.Scan(
		&a.ID,
		&a.UserID,
		&timeSlotID,
		&locationID,
		&street,
		&houseNumber,
		&postalCode,
		&city,
		&a.StartTime,
		&a.EndTime,
		&a.IsExam,
		&calendarEventID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.StartTime = a.StartTime.UTC()
	a.EndTime = a.EndTime.UTC()

	if timeSlotID.Valid {
		id := timeSlotID.Int64
		a.TimeSlotID = &id
	}
	if calendarEventID.Valid {
		eventID := calendarEventID.String
		a.CalendarEventID = &eventID
	}

	switch {
	case locationID.Valid:
		a.Location = domain.NamedLocation{ID: locationID.Int64}
	case street.Valid || houseNumber.Valid || postalCode.Valid || city.Valid:
		a.Location = domain.CustomAddress{
			Street:      street.String,
			HouseNumber: houseNumber.String,
			PostalCode:  postalCode.String,
			City:        city.String,
		}
	}

	return &a, nil
}
