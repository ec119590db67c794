package get_agenda

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/internal/rules/conflicts"
)

// AppointmentRepository интерфейс репозитория агенды
type AppointmentRepository interface {
	ListWithOrders(ctx context.Context, from, to time.Time) ([]domain.ScheduledOrder, error)
}

// Detector детектор конфликтов
type Detector = conflicts.Detector

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
