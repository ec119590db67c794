package list_rates

import (
	"context"

	"github.com/m04kA/SMC-TransferService/internal/service/ratetable/models"
)

type RateService interface {
	List(ctx context.Context) (*models.RateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
