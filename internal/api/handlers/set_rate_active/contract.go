package set_rate_active

import (
	"context"

	"github.com/m04kA/SMC-TransferService/internal/domain"
)

type RateService interface {
	SetActive(ctx context.Context, id string, active bool) (*domain.RateRow, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
