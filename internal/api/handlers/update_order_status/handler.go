package update_order_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TransferService/internal/api/handlers"
	"github.com/m04kA/SMC-TransferService/internal/service/orders"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус заказа"
	msgNotFound           = "заказ не найден"
	msgInvalidTransition  = "недопустимая смена статуса"
	msgUseCancel          = "для отмены используйте POST /orders/{orderId}/cancel"
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

// Handle PATCH /api/v1/orders/{orderId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /orders/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidInput):
			h.logger.Warn("PATCH /orders/{id}/status - Invalid status: order_id=%s, status=%s", orderID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, orders.ErrUseCancel):
			h.logger.Warn("PATCH /orders/{id}/status - Cancel via status: order_id=%s", orderID)
			handlers.RespondBadRequest(w, msgUseCancel)

		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("PATCH /orders/{id}/status - Order not found: order_id=%s", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, orders.ErrInvalidTransition):
			h.logger.Warn("PATCH /orders/{id}/status - Invalid transition: order_id=%s, error=%v", orderID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /orders/{id}/status - Failed to update status: order_id=%s, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{id}/status - Status updated: order_id=%s, status=%s", orderID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, order)
}
