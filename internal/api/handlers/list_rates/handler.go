package list_rates

import (
	"net/http"

	"github.com/m04kA/SMC-TransferService/internal/api/handlers"
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

// Handle GET /api/v1/rates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rates, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /rates - Failed to list rates: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rates - Rates fetched: count=%d", len(rates.Rates))
	handlers.RespondJSON(w, http.StatusOK, rates)
}
