package get_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/appointments"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/appointments/models"
)

type fakeService struct{}

func (fakeService) GetByID(_ context.Context, id int64, userID string) (*models.AppointmentResponse, error) {
	switch {
	case id != 1:
		return nil, appointments.ErrAppointmentNotFound
	case userID != "client-1":
		return nil, appointments.ErrAccessDenied
	}
	return &models.AppointmentResponse{ID: id, ClientID: userID}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		userID string
		want   int
	}{
		{name: "client", id: "1", userID: "client-1", want: http.StatusOK},
		{name: "stranger", id: "1", userID: "someone", want: http.StatusForbidden},
		{name: "missing", id: "2", userID: "client-1", want: http.StatusNotFound},
		{name: "bad id", id: "abc", userID: "client-1", want: http.StatusBadRequest},
		{name: "anonymous", id: "1", want: http.StatusUnauthorized},
	}

	h := NewHandler(fakeService{}, nopLogger{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/"+tt.id, nil)
			req = mux.SetURLVars(req, map[string]string{"appointmentId": tt.id})
			if tt.userID != "" {
				req = req.WithContext(middleware.WithUserID(req.Context(), tt.userID))
			}

			rec := httptest.NewRecorder()
			h.Handle(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
