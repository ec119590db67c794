package set_rate_active

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TransferService/internal/api/handlers"
	"github.com/m04kA/SMC-TransferService/internal/service/ratetable"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingActive      = "поле active обязательно"
	msgNotFound           = "строка прайса не найдена"
)

type Handler struct {
	service RateService
	logger  Logger
}

func NewHandler(service RateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/rates/{rateId}/active
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rateID := mux.Vars(r)["rateId"]

	var req SetActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /rates/{id}/active - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Active == nil {
		h.logger.Warn("PATCH /rates/{id}/active - Missing active flag: rate_id=%s", rateID)
		handlers.RespondBadRequest(w, msgMissingActive)
		return
	}

	row, err := h.service.SetActive(r.Context(), rateID, *req.Active)
	if err != nil {
		if errors.Is(err, ratetable.ErrRateNotFound) {
			h.logger.Warn("PATCH /rates/{id}/active - Rate not found: rate_id=%s", rateID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("PATCH /rates/{id}/active - Failed to update rate: rate_id=%s, error=%v", rateID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /rates/{id}/active - Rate updated: rate_id=%s, active=%t", rateID, row.Active)
	handlers.RespondJSON(w, http.StatusOK, row)
}
