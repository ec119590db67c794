package quote_price

import (
	"context"

	"github.com/m04kA/SMC-TransferService/internal/domain"
)

// RateRepository интерфейс репозитория прайса
type RateRepository interface {
	ListActive(ctx context.Context) ([]domain.RateRow, error)
}

// SettingsRepository интерфейс репозитория настроек (системный налог)
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
}

// VehicleRepository интерфейс каталога автомобилей
type VehicleRepository interface {
	GetByClass(ctx context.Context, class string) (*domain.Vehicle, error)
}

// Metrics метрики расчёта цены
type Metrics interface {
	ObserveQuote(source, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
