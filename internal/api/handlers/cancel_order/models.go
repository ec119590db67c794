package cancel_order

import (
	"time"

	cancelOrder "github.com/m04kA/SMC-TransferService/internal/usecase/cancel_order"
	"github.com/m04kA/SMC-TransferService/pkg/money"
)

// CancelOrderRequest HTTP request model. Тело запроса необязательно
type CancelOrderRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CancelOrderRequest) ToUseCaseRequest(orderID string) *cancelOrder.Request {
	reason := ""
	if r.Reason != nil {
		reason = *r.Reason
	}

	return &cancelOrder.Request{
		OrderID: orderID,
		Reason:  reason,
	}
}

// CancelOrderResponse HTTP response model
type CancelOrderResponse struct {
	OrderID        string        `json:"orderId"`
	Status         string        `json:"status"`
	ScheduledStart time.Time     `json:"scheduledStart"`
	CancelledAt    time.Time     `json:"cancelledAt"`
	LeadTimeHours  float64       `json:"leadTimeHours"` // отрицательное, если отмена после начала
	FeePercent     money.Percent `json:"feePercent"`
	FeeAmount      money.Money   `json:"feeAmount"`
	WindowLabel    string        `json:"windowLabel"`
	OrderTotal     money.Money   `json:"orderTotal"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *cancelOrder.Response) *CancelOrderResponse {
	return &CancelOrderResponse{
		OrderID:        resp.OrderID,
		Status:         string(resp.Status),
		ScheduledStart: resp.ScheduledStart,
		CancelledAt:    resp.CancelledAt,
		LeadTimeHours:  resp.LeadTime.Hours(),
		FeePercent:     resp.FeePercent,
		FeeAmount:      resp.FeeAmount,
		WindowLabel:    resp.WindowLabel,
		OrderTotal:     resp.OrderTotal,
	}
}
