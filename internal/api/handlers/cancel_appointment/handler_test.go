package cancel_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DrivingSchool-BookingService/internal/api/middleware"
	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	"github.com/m04kA/DrivingSchool-BookingService/internal/testutil"
	cancelAppointment "github.com/m04kA/DrivingSchool-BookingService/internal/usecase/cancel_appointment"
)

type useCaseMock struct{ mock.Mock }

func (m *useCaseMock) Execute(ctx context.Context, req *cancelAppointment.Request) (*cancelAppointment.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*cancelAppointment.Response)
	return resp, args.Error(1)
}

func serve(uc *useCaseMock, path string, userID int64, role domain.Role) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/appointments/{appointmentId}", NewHandler(uc, testutil.NopLogger{}).Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, path, nil)
	req = req.WithContext(middleware.WithUser(req.Context(), userID, role))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Cancelled(t *testing.T) {
	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything, &cancelAppointment.Request{AppointmentID: 4, ActorID: 1, ActorRole: domain.RoleUser}).
		Return(&cancelAppointment.Response{
			AppointmentID: 4,
			SlotAction:    cancelAppointment.SlotReleased,
			CalendarSync:  domain.CalendarSynced,
		}, nil)

	rec := serve(uc, "/api/v1/appointments/4", 1, domain.RoleUser)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 4, body["appointmentId"])
	assert.Equal(t, "released", body["slotAction"])
	assert.Equal(t, "synced", body["calendarSync"])
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"bad id", "/api/v1/appointments/x", nil, http.StatusBadRequest},
		{"zero id", "/api/v1/appointments/0", nil, http.StatusBadRequest},
		{"not found", "/api/v1/appointments/4", cancelAppointment.ErrAppointmentNotFound, http.StatusNotFound},
		{"foreign appointment", "/api/v1/appointments/4", cancelAppointment.ErrAccessDenied, http.StatusForbidden},
		{"internal", "/api/v1/appointments/4", cancelAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &useCaseMock{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err).Maybe()

			rec := serve(uc, tt.path, 2, domain.RoleUser)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
