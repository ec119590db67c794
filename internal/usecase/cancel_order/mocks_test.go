package cancel_order

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-TransferService/internal/domain"
)

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) GetByID(ctx context.Context, id string) (*domain.ServiceOrder, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*domain.ServiceOrder)
	return o, args.Error(1)
}

func (m *mockOrderRepo) SaveCancellation(ctx context.Context, id string, c domain.Cancellation) error {
	return m.Called(ctx, id, c).Error(0)
}

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Appointment, error) {
	args := m.Called(ctx, orderID)
	a, _ := args.Get(0).(*domain.Appointment)
	return a, args.Error(1)
}

type mockSettingsRepo struct{ mock.Mock }

func (m *mockSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*domain.Settings)
	return s, args.Error(1)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) ObserveCancellationFee(window string) {
	m.Called(window)
}

// inlineTx выполняет функцию без транзакции
type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
