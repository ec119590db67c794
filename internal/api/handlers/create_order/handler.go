package create_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TransferService/internal/api/handlers"
	"github.com/m04kA/SMC-TransferService/internal/service/orders"
	"github.com/m04kA/SMC-TransferService/internal/service/orders/models"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidInput          = "некорректные параметры заказа"
	msgUnknownVehicleClass   = "неизвестный класс автомобиля"
	msgRateNotFound          = "нет активного тарифа, укажите цену вручную"
	msgSettingsNotConfigured = "глобальные настройки не заданы"
)

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders
// Пересечение с другими заказами не мешает созданию: результат проверки возвращается в поле conflicts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidInput):
			h.logger.Warn("POST /orders - Invalid input: client_id=%s, error=%v", req.ClientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, orders.ErrUnknownVehicleClass):
			h.logger.Warn("POST /orders - Unknown vehicle class: %s", req.VehicleClass)
			handlers.RespondBadRequest(w, msgUnknownVehicleClass)

		case errors.Is(err, orders.ErrRateNotFound):
			h.logger.Warn("POST /orders - Rate not found: client_id=%s", req.ClientID)
			handlers.RespondNotFound(w, msgRateNotFound)

		case errors.Is(err, orders.ErrSettingsNotConfigured):
			h.logger.Warn("POST /orders - Settings not configured")
			handlers.RespondConflict(w, msgSettingsNotConfigured)

		default:
			h.logger.Error("POST /orders - Failed to create order: client_id=%s, error=%v", req.ClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders - Order created: order_id=%s, client_id=%s", result.Order.ID, req.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
