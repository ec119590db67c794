package orders

import (
	"context"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/internal/rules/conflicts"
	"github.com/m04kA/SMC-TransferService/internal/usecase/quote_price"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, o *domain.ServiceOrder) (*domain.ServiceOrder, error)
	GetByID(ctx context.Context, id string) (*domain.ServiceOrder, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

// AppointmentRepository интерфейс репозитория агенды
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Appointment, error)
}

// PriceQuoter расчёт цены заказа
type PriceQuoter interface {
	Execute(ctx context.Context, req *quote_price.Request) (*quote_price.Response, error)
}

// ConflictChecker рекомендательная проверка конфликтов
type ConflictChecker interface {
	Check(ctx context.Context, candidate domain.ScheduledOrder) (conflicts.Verdict, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
