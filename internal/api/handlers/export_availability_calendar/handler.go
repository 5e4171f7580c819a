package export_availability_calendar

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/calendar"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

const (
	msgMissingProviderID = "ID мастера обязателен"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service AvailabilityService
	loc     *time.Location
	logger  Logger
	now     func() time.Time
}

func NewHandler(service AvailabilityService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
		now:     time.Now,
	}
}

// Handle GET /api/v1/providers/{providerId}/availability.ics
// Query params: from (опционально, YYYY-MM-DD) - с какой даты начинаются повторения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]
	if providerID == "" {
		handlers.RespondBadRequest(w, msgMissingProviderID)
		return
	}

	now := h.now()
	anchor := domain.StartOfDay(now.In(h.loc))
	if from := r.URL.Query().Get("from"); from != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, from, h.loc)
		if err != nil {
			h.logger.Warn("GET /providers/{id}/availability.ics - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		anchor = parsed
	}

	pa, err := h.service.Load(r.Context(), providerID)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgMissingProviderID)
			return
		}
		h.logger.Error("GET /providers/{id}/availability.ics - Failed to load availability: provider_id=%s, error=%v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	body, err := calendar.AvailabilityCalendar(pa, anchor, h.loc, now)
	if err != nil {
		h.logger.Error("GET /providers/{id}/availability.ics - Failed to build calendar: provider_id=%s, error=%v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers/{id}/availability.ics - Calendar exported: provider_id=%s", providerID)
	handlers.RespondCalendar(w, "availability-"+providerID+".ics", body)
}
