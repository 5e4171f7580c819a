package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

const (
	msgMissingProviderID = "ID мастера обязателен"
	msgMissingDate       = "дата обязательна: date или startDate"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParams     = "некорректные параметры запроса"
	msgDateInPast        = "период не может начинаться в прошлом"
	msgDateTooFar        = "дата слишком далеко в будущем"
	msgRangeTooLong      = "слишком длинный период"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/available-slots
// Query params: date | startDate[&endDate], duration, interval, onlyAvailable
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, ok := Fetch(w, r, h.useCase, h.logger, "GET /providers/{id}/available-slots")
	if !ok {
		return
	}

	h.logger.Info("GET /providers/{id}/available-slots - Slots retrieved successfully: provider_id=%s, available=%d, unavailable=%d",
		result.ProviderID, result.AvailableCount, result.UnavailableCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// Fetch разбирает запрос, вызывает use case и сам отвечает клиенту при ошибке.
// Общий для JSON и iCalendar представлений слотов.
func Fetch(
	w http.ResponseWriter,
	r *http.Request,
	useCase GetAvailableSlotsUseCase,
	logger Logger,
	route string,
) (*getAvailableSlots.Response, bool) {
	providerID := mux.Vars(r)["providerId"]
	if providerID == "" {
		logger.Warn("%s - Missing provider ID", route)
		handlers.RespondBadRequest(w, msgMissingProviderID)
		return nil, false
	}

	useCaseReq, err := ToUseCaseRequest(providerID, r.URL.Query())
	if err != nil {
		logger.Warn("%s - Invalid query: provider_id=%s: %v", route, providerID, err)
		switch {
		case errors.Is(err, errMissingDate):
			handlers.RespondBadRequest(w, msgMissingDate)
		case errors.Is(err, errInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)
		default:
			handlers.RespondBadRequest(w, msgInvalidParams)
		}
		return nil, false
	}

	result, err := useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			logger.Warn("%s - Invalid input: provider_id=%s: %v", route, providerID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			logger.Warn("%s - Date in past: provider_id=%s", route, providerID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			logger.Warn("%s - Date too far: provider_id=%s", route, providerID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrRangeTooLong):
			logger.Warn("%s - Range too long: provider_id=%s", route, providerID)
			handlers.RespondBadRequest(w, msgRangeTooLong)

		default:
			logger.Error("%s - Failed to get slots: provider_id=%s, error=%v", route, providerID, err)
			handlers.RespondInternalError(w)
		}
		return nil, false
	}

	return result, true
}
