package locations

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	"github.com/m04kA/DrivingSchool-BookingService/internal/testutil"
	"github.com/m04kA/DrivingSchool-BookingService/internal/testutil/memstore"
)

func newService() (*memstore.Store, *Service) {
	store := memstore.New()
	store.AddLocation(domain.Location{ID: 1, Name: "Station", Street: "Stationsplein", HouseNumber: "1", PostalCode: "2800", City: "Mechelen"})
	store.AddLocation(domain.Location{ID: 2, Name: "Examencentrum"})
	return store, NewService(store.Locations(), testutil.NopLogger{})
}

func TestGetByName(t *testing.T) {
	_, svc := newService()

	resp, err := svc.GetByName(context.Background(), " Station ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Stationsplein 1, 2800 Mechelen", resp.Address)

	_, err = svc.GetByName(context.Background(), "Markt")
	require.ErrorIs(t, err, ErrLocationNotFound)

	_, err = svc.GetByName(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetByName(context.Background(), strings.Repeat("x", domain.MaxLocationNameLength+1))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_OrderedByName(t *testing.T) {
	_, svc := newService()

	resp, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.Locations, 2)
	assert.Equal(t, "Examencentrum", resp.Locations[0].Name)
	assert.Equal(t, "Examencentrum", resp.Locations[0].Address, "falls back to the name")
}

func TestList_RepositoryFailure(t *testing.T) {
	store, svc := newService()
	store.FailOn("locations.List", errors.New("connection reset"))

	_, err := svc.List(context.Background())

	require.ErrorIs(t, err, ErrInternal)
}
