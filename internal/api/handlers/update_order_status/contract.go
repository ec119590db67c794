package update_order_status

import (
	"context"

	"github.com/m04kA/SMC-TransferService/internal/service/orders/models"
)

type OrderService interface {
	UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
