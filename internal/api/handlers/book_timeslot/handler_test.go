package book_timeslot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DrivingSchool-BookingService/internal/api/middleware"
	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	"github.com/m04kA/DrivingSchool-BookingService/internal/testutil"
	bookTimeSlot "github.com/m04kA/DrivingSchool-BookingService/internal/usecase/book_timeslot"
)

type useCaseMock struct{ mock.Mock }

func (m *useCaseMock) Execute(ctx context.Context, req *bookTimeSlot.Request) (*domain.BookingResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*domain.BookingResult)
	return result, args.Error(1)
}

func serve(uc *useCaseMock, path, body string, userID int64) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/timeslots/{timeSlotId}/book", NewHandler(uc, testutil.NopLogger{}).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUser(req.Context(), userID, domain.RoleUser))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Booked(t *testing.T) {
	uc := &useCaseMock{}
	slotID := int64(5)
	start := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, &bookTimeSlot.Request{
		TimeSlotID: 5,
		UserID:     3,
		Location:   domain.NamedLocation{ID: 2},
	}).Return(&domain.BookingResult{
		Appointment: &domain.Appointment{
			ID: 11, UserID: 3, TimeSlotID: &slotID, StartTime: start, EndTime: start.Add(30 * time.Minute),
			Location: domain.NamedLocation{ID: 2},
		},
		CalendarSync: domain.CalendarFailed,
	}, nil)

	rec := serve(uc, "/api/v1/timeslots/5/book", `{"location":{"locationId":2}}`, 3)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Appointment struct {
			ID       int64 `json:"id"`
			Location struct {
				LocationID int64 `json:"locationId"`
			} `json:"location"`
		} `json:"appointment"`
		CalendarSync string `json:"calendarSync"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(11), body.Appointment.ID)
	assert.Equal(t, int64(2), body.Appointment.Location.LocationID)
	assert.Equal(t, "failed", body.CalendarSync)
	uc.AssertExpectations(t)
}

func TestHandle_EmptyBodyBooksWithoutLocation(t *testing.T) {
	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything, &bookTimeSlot.Request{TimeSlotID: 5, UserID: 3}).
		Return(&domain.BookingResult{Appointment: &domain.Appointment{ID: 1, UserID: 3}, CalendarSync: domain.CalendarSkipped}, nil)

	rec := serve(uc, "/api/v1/timeslots/5/book", "", 3)

	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		userID int64
		err    error
		status int
	}{
		{"bad slot id", "/api/v1/timeslots/abc/book", "", 3, nil, http.StatusBadRequest},
		{"negative slot id", "/api/v1/timeslots/-1/book", "", 3, nil, http.StatusBadRequest},
		{"no user", "/api/v1/timeslots/5/book", "", 0, nil, http.StatusUnauthorized},
		{"both location kinds", "/api/v1/timeslots/5/book",
			`{"location":{"locationId":1,"customPickup":{"street":"Kerkstraat","houseNumber":"1","postalCode":"2000","city":"Antwerpen"}}}`,
			3, nil, http.StatusBadRequest},
		{"slot taken", "/api/v1/timeslots/5/book", "", 3, bookTimeSlot.ErrSlotNotAvailable, http.StatusConflict},
		{"unknown location", "/api/v1/timeslots/5/book", `{"location":{"locationId":9}}`, 3, bookTimeSlot.ErrLocationNotFound, http.StatusNotFound},
		{"internal", "/api/v1/timeslots/5/book", "", 3, bookTimeSlot.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &useCaseMock{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err).Maybe()

			rec := serve(uc, tt.path, tt.body, tt.userID)

			assert.Equal(t, tt.status, rec.Code)
			if tt.err == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}
