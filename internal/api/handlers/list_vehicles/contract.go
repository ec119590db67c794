package list_vehicles

import (
	"context"

	"github.com/m04kA/SMC-TransferService/internal/service/settings/models"
)

type SettingsService interface {
	ListVehicles(ctx context.Context) (*models.VehicleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
