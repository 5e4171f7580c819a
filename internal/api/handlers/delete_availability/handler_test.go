package delete_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

type fakeService struct {
	err error
}

func (f fakeService) Delete(context.Context, string, string) error {
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "deleted", want: http.StatusNoContent},
		{name: "not found", err: availability.ErrAvailabilityNotFound, want: http.StatusNotFound},
		{name: "forbidden", err: availability.ErrAccessDenied, want: http.StatusForbidden},
		{name: "internal", err: availability.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/providers/provider-1/availability", nil)
			req = mux.SetURLVars(req, map[string]string{"providerId": "provider-1"})
			req = req.WithContext(middleware.WithUserID(req.Context(), "provider-1"))

			rec := httptest.NewRecorder()
			NewHandler(fakeService{err: tt.err}, nopLogger{}).Handle(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNoContent {
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}
