package cancel_order

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TransferService/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ServiceOrder, error)
	SaveCancellation(ctx context.Context, id string, c domain.Cancellation) error
}

// AppointmentRepository интерфейс репозитория агенды
type AppointmentRepository interface {
	GetByOrderID(ctx context.Context, orderID string) (*domain.Appointment, error)
}

// SettingsRepository интерфейс репозитория настроек (политика отмены)
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics метрики отмен
type Metrics interface {
	ObserveCancellationFee(window string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
