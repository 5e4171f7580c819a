package update_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	updateAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/update_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "изменять расписание может только сам мастер"
	msgInvalidSchedule    = "некорректное расписание"
	msgInvalidInput       = "некорректные данные"
)

type Handler struct {
	useCase UpdateAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/providers/{providerId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /providers/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /providers/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("PUT /providers/{id}/availability - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSchedule+": "+err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(providerID, userID))
	if err != nil {
		switch {
		case errors.Is(err, updateAvailability.ErrForbidden):
			h.logger.Warn("PUT /providers/{id}/availability - Forbidden: provider_id=%s, user_id=%s", providerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateAvailability.ErrInvalidSchedule):
			h.logger.Warn("PUT /providers/{id}/availability - Invalid schedule: provider_id=%s: %v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule+": "+rootCause(err))

		case errors.Is(err, updateAvailability.ErrInvalidInput):
			h.logger.Warn("PUT /providers/{id}/availability - Invalid input: provider_id=%s: %v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /providers/{id}/availability - Failed to update availability: provider_id=%s, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /providers/{id}/availability - Availability updated successfully: provider_id=%s", providerID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// rootCause текст самой вложенной ошибки валидации (например "Time intervals cannot overlap")
func rootCause(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
