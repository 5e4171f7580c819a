package validate_availability

import (
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const msgInvalidRequestBody = "некорректное тело запроса"

// ValidateRequest интервалы одного дня из формы редактирования
type ValidateRequest struct {
	Intervals []domain.TimeInterval `json:"intervals"`
}

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

// Handle POST /api/v1/availability/validate
// Невалидные интервалы это нормальный ответ 200 с isValid=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result := h.service.ValidateIntervals(req.Intervals)
	handlers.RespondJSON(w, http.StatusOK, result)
}
