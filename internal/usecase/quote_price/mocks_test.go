package quote_price

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-TransferService/internal/domain"
)

type mockRateRepo struct{ mock.Mock }

func (m *mockRateRepo) ListActive(ctx context.Context) ([]domain.RateRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]domain.RateRow)
	return rows, args.Error(1)
}

type mockSettingsRepo struct{ mock.Mock }

func (m *mockSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*domain.Settings)
	return s, args.Error(1)
}

type mockVehicleRepo struct{ mock.Mock }

func (m *mockVehicleRepo) GetByClass(ctx context.Context, class string) (*domain.Vehicle, error) {
	args := m.Called(ctx, class)
	v, _ := args.Get(0).(*domain.Vehicle)
	return v, args.Error(1)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) ObserveQuote(source, result string) {
	m.Called(source, result)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
