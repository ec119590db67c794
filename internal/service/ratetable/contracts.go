package ratetable

import (
	"context"

	"github.com/m04kA/SMC-TransferService/internal/domain"
)

// RateRepository интерфейс репозитория прайса
type RateRepository interface {
	Create(ctx context.Context, row *domain.RateRow) (*domain.RateRow, error)
	GetByID(ctx context.Context, id string) (*domain.RateRow, error)
	List(ctx context.Context) ([]domain.RateRow, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// VehicleRepository интерфейс каталога автомобилей
type VehicleRepository interface {
	GetByClass(ctx context.Context, class string) (*domain.Vehicle, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
