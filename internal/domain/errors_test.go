package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlapError(t *testing.T) {
	sentinel := errors.New("create_timeslot: time slot overlaps an existing slot")
	conflict := &TimeSlot{StartTime: at(10, 0), EndTime: at(11, 0)}

	err := error(NewOverlapError(conflict, sentinel))

	require.ErrorIs(t, err, sentinel)

	var overlap *OverlapError
	require.ErrorAs(t, err, &overlap)
	assert.True(t, overlap.Start.Equal(at(10, 0)))
	assert.True(t, overlap.End.Equal(at(11, 0)))
	assert.Contains(t, err.Error(), "2025-01-10T10:00:00Z")
}

func TestValidatePickupLocation(t *testing.T) {
	valid := CustomAddress{Street: "Kerkstraat", HouseNumber: "1", PostalCode: "9000", City: "Gent"}
	tooLong := valid
	tooLong.Street = strings.Repeat("a", MaxAddressFieldLength+1)

	tests := []struct {
		name    string
		loc     PickupLocation
		wantErr bool
	}{
		{"none", nil, false},
		{"named", NamedLocation{ID: 1}, false},
		{"named zero id", NamedLocation{}, true},
		{"custom", valid, false},
		{"custom incomplete", CustomAddress{Street: "Kerkstraat"}, true},
		{"custom too long", tooLong, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePickupLocation(tt.loc)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidLocation)
				return
			}
			require.NoError(t, err)
		})
	}
}
