package check_conflicts

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TransferService/internal/api/handlers"
	checkConflicts "github.com/m04kA/SMC-TransferService/internal/usecase/check_conflicts"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректный интервал или ресурсы"
	msgMalformedData      = "в агенде есть запись с некорректным интервалом"
)

type Handler struct {
	useCase CheckConflictsUseCase
	logger  Logger
}

func NewHandler(useCase CheckConflictsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/conflicts
// Проверка рекомендательная: ответ 200 и при найденных конфликтах
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckConflictsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/conflicts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	verdict, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, checkConflicts.ErrInvalidInput):
			h.logger.Warn("POST /appointments/conflicts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, checkConflicts.ErrMalformedAppointment):
			h.logger.Error("POST /appointments/conflicts - Malformed stored data: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgMalformedData)

		default:
			h.logger.Error("POST /appointments/conflicts - Failed to check conflicts: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/conflicts - Checked: has_conflict=%t, orders=%v",
		verdict.HasConflict, verdict.ConflictingOrderIDs)
	handlers.RespondJSON(w, http.StatusOK, verdict)
}
