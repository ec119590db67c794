package create_rate

import (
	"context"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/internal/service/ratetable/models"
)

type RateService interface {
	Create(ctx context.Context, req *models.CreateRateRequest) (*domain.RateRow, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
