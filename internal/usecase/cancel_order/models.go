package cancel_order

import (
	"time"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/pkg/money"
)

// Request модель запроса на отмену заказа
type Request struct {
	OrderID string // ID заказа
	Reason  string // Причина отмены в свободной форме (опционально)
}

// Response модель ответа с рассчитанным штрафом
type Response struct {
	OrderID        string
	Status         domain.OrderStatus
	ScheduledStart time.Time
	CancelledAt    time.Time
	LeadTime       time.Duration // Может быть отрицательным, если отмена после начала
	FeePercent     money.Percent
	FeeAmount      money.Money
	WindowLabel    string
	OrderTotal     money.Money
}
