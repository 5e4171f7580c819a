package export_slots_calendar

import (
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	slotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_slots"
	"github.com/m04kA/SMC-AvailabilityService/internal/calendar"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const route = "GET /providers/{id}/available-slots.ics"

type Handler struct {
	useCase GetAvailableSlotsUseCase
	loc     *time.Location
	logger  Logger
	now     func() time.Time
}

func NewHandler(useCase GetAvailableSlotsUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
		now:     time.Now,
	}
}

// Handle GET /api/v1/providers/{providerId}/available-slots.ics
// Те же query параметры, что и у JSON версии. В календарь попадают только свободные слоты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, ok := slotsHandler.Fetch(w, r, h.useCase, h.logger, route)
	if !ok {
		return
	}

	body, err := calendar.SlotsCalendar(result.ProviderID, result.Slots, h.loc, h.now())
	if err != nil {
		h.logger.Error("%s - Failed to build calendar: provider_id=%s, error=%v", route, result.ProviderID, err)
		handlers.RespondInternalError(w)
		return
	}

	filename := fmt.Sprintf("slots-%s-%s.ics", result.ProviderID, result.StartDate.Format(domain.DateFormat))
	h.logger.Info("%s - Calendar exported: provider_id=%s, available=%d", route, result.ProviderID, result.AvailableCount)
	handlers.RespondCalendar(w, filename, body)
}
