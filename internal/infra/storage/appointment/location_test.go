package appointment

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
)

type unknownLocation struct{ domain.NamedLocation }

func TestFlattenLocation(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		cols, err := flattenLocation(nil)
		require.NoError(t, err)
		assert.Equal(t, locationColumns{}, cols)
	})

	t.Run("named", func(t *testing.T) {
		cols, err := flattenLocation(domain.NamedLocation{ID: 5})
		require.NoError(t, err)
		require.NotNil(t, cols.locationID)
		assert.Equal(t, int64(5), *cols.locationID)
		assert.Nil(t, cols.street)
		assert.Nil(t, cols.city)
	})

	t.Run("custom", func(t *testing.T) {
		cols, err := flattenLocation(domain.CustomAddress{Street: "Kerkstraat", HouseNumber: "1", PostalCode: "9000", City: "Gent"})
		require.NoError(t, err)
		assert.Nil(t, cols.locationID)
		assert.Equal(t, "Kerkstraat", *cols.street)
		assert.Equal(t, "1", *cols.houseNumber)
		assert.Equal(t, "9000", *cols.postalCode)
		assert.Equal(t, "Gent", *cols.city)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := flattenLocation(unknownLocation{})
		require.ErrorIs(t, err, ErrInvalidLocation)
	})
}

// fakeRow заполняет назначения Scan заранее заданными значениями
type fakeRow struct {
	values []interface{}
}

func (r fakeRow) Scan(dest ...interface{}) error {
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *bool:
			*p = r.values[i].(bool)
		case *time.Time:
			*p = r.values[i].(time.Time)
		case *sql.NullInt64:
			if v, ok := r.values[i].(int64); ok {
				*p = sql.NullInt64{Int64: v, Valid: true}
			}
		case *sql.NullString:
			if v, ok := r.values[i].(string); ok {
				*p = sql.NullString{String: v, Valid: true}
			}
		}
	}
	return nil
}

func TestScanAppointment(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	start := time.Date(2025, 1, 10, 10, 0, 0, 0, cet)
	end := start.Add(time.Hour)

	t.Run("custom pickup", func(t *testing.T) {
		row := fakeRow{values: []interface{}{
			int64(1), int64(2), int64(3), nil,
			"Kerkstraat", "1", "9000", "Gent",
			start, end, false, "evt-1", start, start,
		}}

		a, err := scanAppointment(row)
		require.NoError(t, err)

		assert.Equal(t, time.UTC, a.StartTime.Location())
		require.NotNil(t, a.TimeSlotID)
		assert.Equal(t, int64(3), *a.TimeSlotID)
		require.NotNil(t, a.CalendarEventID)
		assert.Equal(t, "evt-1", *a.CalendarEventID)

		addr, ok := a.CustomPickup()
		require.True(t, ok)
		assert.Equal(t, "Gent", addr.City)
	})

	t.Run("named location without slot", func(t *testing.T) {
		row := fakeRow{values: []interface{}{
			int64(1), int64(2), nil, int64(4),
			nil, nil, nil, nil,
			start, end, true, nil, start, start,
		}}

		a, err := scanAppointment(row)
		require.NoError(t, err)

		assert.Nil(t, a.TimeSlotID)
		assert.Nil(t, a.CalendarEventID)
		assert.True(t, a.IsExam)
		id, ok := a.NamedLocationID()
		require.True(t, ok)
		assert.Equal(t, int64(4), id)
	})

	t.Run("no location", func(t *testing.T) {
		row := fakeRow{values: []interface{}{
			int64(1), int64(2), int64(3), nil,
			nil, nil, nil, nil,
			start, end, false, nil, start, start,
		}}

		a, err := scanAppointment(row)
		require.NoError(t, err)
		assert.Nil(t, a.Location)
	})
}
