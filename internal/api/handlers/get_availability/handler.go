package get_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

const msgMissingProviderID = "ID мастера обязателен"

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/availability
// Без сохраненного расписания отдает шаблон по умолчанию с isDefault=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	result, err := h.service.Get(r.Context(), providerID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/availability - Invalid provider ID")
			handlers.RespondBadRequest(w, msgMissingProviderID)

		default:
			h.logger.Error("GET /providers/{id}/availability - Failed to get availability: provider_id=%s, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/availability - Availability retrieved successfully: provider_id=%s, default=%t",
		providerID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
