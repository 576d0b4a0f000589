package get_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/DrivingSchool-BookingService/internal/api/middleware"
	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	"github.com/m04kA/DrivingSchool-BookingService/internal/service/appointments"
	"github.com/m04kA/DrivingSchool-BookingService/internal/service/appointments/models"
	"github.com/m04kA/DrivingSchool-BookingService/internal/testutil"
)

type serviceMock struct{ mock.Mock }

func (m *serviceMock) GetByID(ctx context.Context, id, actorID int64, actorRole domain.Role) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, id, actorID, actorRole)
	resp, _ := args.Get(0).(*models.AppointmentResponse)
	return resp, args.Error(1)
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		resp   *models.AppointmentResponse
		err    error
		status int
	}{
		{"owner", &models.AppointmentResponse{ID: 6, UserID: 2}, nil, http.StatusOK},
		{"foreign", nil, appointments.ErrAccessDenied, http.StatusForbidden},
		{"missing", nil, appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"internal", nil, appointments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			svc.On("GetByID", mock.Anything, int64(6), int64(2), domain.RoleUser).Return(tt.resp, tt.err)

			router := mux.NewRouter()
			router.HandleFunc("/api/v1/appointments/{appointmentId}", NewHandler(svc, testutil.NopLogger{}).Handle)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/6", nil)
			req = req.WithContext(middleware.WithUser(req.Context(), 2, domain.RoleUser))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandle_Unauthenticated(t *testing.T) {
	svc := &serviceMock{}

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/appointments/{appointmentId}", NewHandler(svc, testutil.NopLogger{}).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/6", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
