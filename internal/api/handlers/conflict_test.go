package handlers

import (
	"errors"
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	"github.com/m04kA/DrivingSchool-BookingService/pkg/txmanager"
)

var errOverlap = errors.New("overlap")

func TestOverlapMessage(t *testing.T) {
	existing := &domain.TimeSlot{
		StartTime: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC),
	}
	brussels, err := time.LoadLocation("Europe/Brussels")
	require.NoError(t, err)

	tests := []struct {
		name string
		err  error
		loc  *time.Location
		want string
	}{
		{"window in utc", domain.NewOverlapError(existing, errOverlap), nil, "слот пересекается со слотом 09:00 - 10:00"},
		{"window in school zone", fmt.Errorf("wrapped: %w", domain.NewOverlapError(existing, errOverlap)), brussels, "слот пересекается со слотом 10:00 - 11:00"},
		{"no window", errOverlap, time.UTC, msgSlotOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverlapMessage(tt.err, tt.loc))
		})
	}
}

func TestIsRetriesExhausted(t *testing.T) {
	assert.True(t, IsRetriesExhausted(fmt.Errorf("%w: %w", txmanager.ErrRetriesExhausted, errOverlap)))
	assert.False(t, IsRetriesExhausted(errOverlap))
}
