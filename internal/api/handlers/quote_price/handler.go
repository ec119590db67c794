package quote_price

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TransferService/internal/api/handlers"
	quotePrice "github.com/m04kA/SMC-TransferService/internal/usecase/quote_price"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidInput          = "некорректные параметры услуги"
	msgUnknownVehicleClass   = "неизвестный класс автомобиля"
	msgRateNotFound          = "нет активного тарифа, укажите цену вручную"
	msgSettingsNotConfigured = "глобальные настройки не заданы"
)

type Handler struct {
	useCase QuotePriceUseCase
	logger  Logger
}

func NewHandler(useCase QuotePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, quotePrice.ErrInvalidInput):
			h.logger.Warn("POST /quotes - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, quotePrice.ErrUnknownVehicleClass):
			h.logger.Warn("POST /quotes - Unknown vehicle class: %s", req.VehicleClass)
			handlers.RespondBadRequest(w, msgUnknownVehicleClass)

		case errors.Is(err, quotePrice.ErrRateNotFound):
			h.logger.Warn("POST /quotes - Rate not found: kind=%s, vehicle=%s, driver=%s",
				req.ServiceKind, req.VehicleClass, req.DriverClass)
			handlers.RespondNotFound(w, msgRateNotFound)

		case errors.Is(err, quotePrice.ErrSettingsNotConfigured):
			h.logger.Warn("POST /quotes - Settings not configured")
			handlers.RespondConflict(w, msgSettingsNotConfigured)

		default:
			h.logger.Error("POST /quotes - Failed to quote price: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes - Quote calculated: source=%s, total=%s", result.PriceSource, result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
