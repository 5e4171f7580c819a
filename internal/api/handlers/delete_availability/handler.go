package delete_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

const (
	msgMissingUserID     = "отсутствует ID пользователя"
	msgMissingProviderID = "ID мастера обязателен"
	msgForbidden         = "удалить расписание может только сам мастер"
	msgNotFound          = "расписание не найдено"
)

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

// Handle DELETE /api/v1/providers/{providerId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /providers/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err := h.service.Delete(r.Context(), providerID, userID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /providers/{id}/availability - Forbidden: provider_id=%s, user_id=%s", providerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrAvailabilityNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingProviderID)

		default:
			h.logger.Error("DELETE /providers/{id}/availability - Failed to delete availability: provider_id=%s, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /providers/{id}/availability - Availability deleted: provider_id=%s", providerID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
