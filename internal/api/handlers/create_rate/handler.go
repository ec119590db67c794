package create_rate

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TransferService/internal/api/handlers"
	"github.com/m04kA/SMC-TransferService/internal/service/ratetable"
	"github.com/m04kA/SMC-TransferService/internal/service/ratetable/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректная строка прайса"
	msgUnknownVehicleClass = "неизвестный класс автомобиля"
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

// Handle POST /api/v1/rates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	row, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ratetable.ErrInvalidInput):
			h.logger.Warn("POST /rates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, ratetable.ErrUnknownVehicleClass):
			h.logger.Warn("POST /rates - Unknown vehicle class: %s", req.VehicleClass)
			handlers.RespondBadRequest(w, msgUnknownVehicleClass)

		default:
			h.logger.Error("POST /rates - Failed to create rate: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rates - Rate created: rate_id=%s", row.ID)
	handlers.RespondJSON(w, http.StatusCreated, row)
}
