package orders

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/internal/rules/conflicts"
	"github.com/m04kA/SMC-TransferService/internal/usecase/quote_price"
)

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) Create(ctx context.Context, o *domain.ServiceOrder) (*domain.ServiceOrder, error) {
	args := m.Called(ctx, o)
	if fn, ok := args.Get(0).(func(*domain.ServiceOrder) *domain.ServiceOrder); ok {
		return fn(o), args.Error(1)
	}
	created, _ := args.Get(0).(*domain.ServiceOrder)
	return created, args.Error(1)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id string) (*domain.ServiceOrder, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*domain.ServiceOrder)
	return o, args.Error(1)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	args := m.Called(ctx, a)
	if fn, ok := args.Get(0).(func(*domain.Appointment) *domain.Appointment); ok {
		return fn(a), args.Error(1)
	}
	created, _ := args.Get(0).(*domain.Appointment)
	return created, args.Error(1)
}

func (m *mockAppointmentRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Appointment, error) {
	args := m.Called(ctx, orderID)
	a, _ := args.Get(0).(*domain.Appointment)
	return a, args.Error(1)
}

type mockQuoter struct{ mock.Mock }

func (m *mockQuoter) Execute(ctx context.Context, req *quote_price.Request) (*quote_price.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*quote_price.Response)
	return resp, args.Error(1)
}

type mockChecker struct{ mock.Mock }

func (m *mockChecker) Check(ctx context.Context, candidate domain.ScheduledOrder) (conflicts.Verdict, error) {
	args := m.Called(ctx, candidate)
	return args.Get(0).(conflicts.Verdict), args.Error(1)
}

// inlineTx выполняет функцию без транзакции
type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
