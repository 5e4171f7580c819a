package get_available_slots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

type fakeUseCase struct {
	req  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.req = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/providers/{providerId}/available-slots", NewHandler(uc, nopLogger{}).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	day := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		ProviderID:      "provider-1",
		StartDate:       day,
		EndDate:         day,
		ServiceDuration: 30,
		SlotInterval:    15,
		Slots: []domain.AvailableTimeSlot{
			{Date: "2025-10-13", StartTime: "09:00", EndTime: "09:30", Duration: 30, IsAvailable: true, ProviderID: "provider-1"},
		},
		AvailableCount: 1,
	}}

	rec := serve(uc, "/api/v1/providers/provider-1/available-slots?date=2025-10-13&duration=30&interval=15&onlyAvailable=true")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "provider-1", uc.req.ProviderID)
	assert.True(t, uc.req.StartDate.Equal(day))
	assert.True(t, uc.req.EndDate.IsZero())
	assert.True(t, uc.req.OnlyAvailable)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "09:30", body.Slots[0].EndTime)
	assert.Equal(t, "2025-10-13", body.StartDate)
}

func TestHandle_Range(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{}}

	rec := serve(uc, "/api/v1/providers/provider-1/available-slots?startDate=2025-10-13&endDate=2025-10-19")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 19, uc.req.EndDate.Day())
}

func TestHandle_BadRequests(t *testing.T) {
	for _, target := range []string{
		"/api/v1/providers/p/available-slots",
		"/api/v1/providers/p/available-slots?date=13.10.2025",
		"/api/v1/providers/p/available-slots?date=2025-10-13&startDate=2025-10-13",
		"/api/v1/providers/p/available-slots?date=2025-10-13&duration=abc",
		"/api/v1/providers/p/available-slots?date=2025-10-13&onlyAvailable=maybe",
	} {
		uc := &fakeUseCase{}
		rec := serve(uc, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Nil(t, uc.req, target)
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{getAvailableSlots.ErrInvalidInput, http.StatusBadRequest},
		{getAvailableSlots.ErrInvalidDate, http.StatusBadRequest},
		{getAvailableSlots.ErrDateTooFarInFuture, http.StatusBadRequest},
		{getAvailableSlots.ErrRangeTooLong, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := serve(&fakeUseCase{err: tt.err}, "/api/v1/providers/p/available-slots?date=2025-10-13")
		assert.Equal(t, tt.code, rec.Code, tt.err.Error())
	}
}
