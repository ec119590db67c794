package cancel_order

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TransferService/internal/api/handlers"
	cancelOrder "github.com/m04kA/SMC-TransferService/internal/usecase/cancel_order"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры отмены"
	msgNotFound           = "заказ не найден"
	msgCannotCancel       = "заказ не может быть отменён"
	msgNoPolicy           = "политика отмены не настроена"
	msgScheduleNotFound   = "у заказа нет записи в агенде"
)

type Handler struct {
	useCase CancelOrderUseCase
	logger  Logger
}

func NewHandler(useCase CancelOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders/{orderId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]

	// Тело необязательно: пустой запрос означает отмену без причины
	var req CancelOrderRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /orders/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(orderID))
	if err != nil {
		switch {
		case errors.Is(err, cancelOrder.ErrInvalidInput):
			h.logger.Warn("POST /orders/{id}/cancel - Invalid input: order_id=%s, error=%v", orderID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, cancelOrder.ErrOrderNotFound):
			h.logger.Warn("POST /orders/{id}/cancel - Order not found: order_id=%s", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelOrder.ErrCannotCancel):
			h.logger.Warn("POST /orders/{id}/cancel - Cannot cancel: order_id=%s", orderID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, cancelOrder.ErrNoPolicyConfigured):
			h.logger.Warn("POST /orders/{id}/cancel - No cancellation policy: order_id=%s", orderID)
			handlers.RespondConflict(w, msgNoPolicy)

		case errors.Is(err, cancelOrder.ErrScheduleNotFound):
			h.logger.Warn("POST /orders/{id}/cancel - Schedule not found: order_id=%s", orderID)
			handlers.RespondConflict(w, msgScheduleNotFound)

		default:
			h.logger.Error("POST /orders/{id}/cancel - Failed to cancel order: order_id=%s, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders/{id}/cancel - Order cancelled: order_id=%s, fee=%s (%s%%)",
		orderID, result.FeeAmount, result.FeePercent)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
