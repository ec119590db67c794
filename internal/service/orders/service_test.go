package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/appointment"
	orderRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/order"
	"github.com/m04kA/SMC-TransferService/internal/rules/conflicts"
	"github.com/m04kA/SMC-TransferService/internal/service/orders/models"
	"github.com/m04kA/SMC-TransferService/internal/usecase/quote_price"
	"github.com/m04kA/SMC-TransferService/pkg/money"
	"github.com/m04kA/SMC-TransferService/pkg/ptr"
)

type fixture struct {
	orders       *mockOrderRepo
	appointments *mockAppointmentRepo
	quoter       *mockQuoter
	checker      *mockChecker
	svc          *Service
}

func newFixture() *fixture {
	f := &fixture{
		orders:       &mockOrderRepo{},
		appointments: &mockAppointmentRepo{},
		quoter:       &mockQuoter{},
		checker:      &mockChecker{},
	}
	f.svc = NewService(f.orders, f.appointments, f.quoter, f.checker, inlineTx{}, nopLogger{})
	return f
}

var start = time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)

func transferRequest() *models.CreateOrderRequest {
	return &models.CreateOrderRequest{
		ClientID:      "client-1",
		ServiceKind:   "transfer",
		VehicleClass:  "sedan",
		DriverClass:   "bilingual",
		PickupAddress: "Airport T1",
		Start:         start,
		End:           ptr.Ptr(start.Add(90 * time.Minute)),
	}
}

func tableQuote() *quote_price.Response {
	return &quote_price.Response{
		PriceSource:  domain.PriceFromTable,
		RateRowID:    ptr.Ptr("rate-1"),
		SupplierCost: money.FromUnits(80),
		Subtotal:     money.FromUnits(120),
		TaxPercent:   money.PercentFromInt(10),
		Tax:          money.FromUnits(12),
		Total:        money.FromUnits(132),
	}
}

func assignOrderID(o *domain.ServiceOrder) *domain.ServiceOrder {
	o.ID = "order-1"
	return o
}

func assignAppointmentID(a *domain.Appointment) *domain.Appointment {
	a.ID = "appt-1"
	return a
}

func TestCreate_PersistsOrderAndReturnsVerdict(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.quoter.On("Execute", ctx, mock.MatchedBy(func(r *quote_price.Request) bool {
		return r.ServiceKind == domain.ServiceTransfer && r.VehicleClass == "sedan" && r.ManualAmount == nil
	})).Return(tableQuote(), nil)
	f.orders.On("Create", ctx, mock.AnythingOfType("*domain.ServiceOrder")).
		Return(func(o *domain.ServiceOrder) *domain.ServiceOrder { return assignOrderID(o) }, nil)
	f.appointments.On("Create", ctx, mock.MatchedBy(func(a *domain.Appointment) bool {
		return a.OrderID == "order-1" && a.Start.Equal(start) && a.End.Equal(start.Add(90*time.Minute)) &&
			a.Kind == domain.AppointmentService
	})).Return(func(a *domain.Appointment) *domain.Appointment { return assignAppointmentID(a) }, nil)

	verdict := conflicts.Verdict{HasConflict: true, VehicleConflict: true, ConflictingOrderIDs: []string{"order-0"}}
	f.checker.On("Check", ctx, mock.MatchedBy(func(c domain.ScheduledOrder) bool {
		return c.Appointment.ID == "appt-1" && c.Order.ID == "order-1"
	})).Return(verdict, nil)

	resp, err := f.svc.Create(ctx, transferRequest())
	require.NoError(t, err)

	assert.Equal(t, "order-1", resp.Order.ID)
	assert.Equal(t, domain.OrderReserved, resp.Order.Status)
	assert.Equal(t, domain.OutsourcingNone, resp.Order.Outsourcing)
	assert.Equal(t, money.FromUnits(132), resp.Order.TotalPrice)
	assert.Equal(t, money.FromUnits(12), resp.Order.TaxAmount)
	assert.Equal(t, "rate-1", *resp.Order.RateRowID)
	require.NotNil(t, resp.Order.Schedule)
	assert.Equal(t, "appt-1", resp.Order.Schedule.AppointmentID)
	require.NotNil(t, resp.Conflicts)
	assert.Equal(t, []string{"order-0"}, resp.Conflicts.ConflictingOrderIDs)
}

func TestCreate_HourlyEndDefaultsToPackage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req := transferRequest()
	req.ServiceKind = "hourly"
	req.HourPackage = ptr.Ptr(4)
	req.End = nil

	f.quoter.On("Execute", ctx, mock.Anything).Return(tableQuote(), nil)
	f.orders.On("Create", ctx, mock.Anything).
		Return(func(o *domain.ServiceOrder) *domain.ServiceOrder { return assignOrderID(o) }, nil)
	f.appointments.On("Create", ctx, mock.MatchedBy(func(a *domain.Appointment) bool {
		return a.End.Equal(start.Add(4 * time.Hour))
	})).Return(func(a *domain.Appointment) *domain.Appointment { return assignAppointmentID(a) }, nil)
	f.checker.On("Check", ctx, mock.Anything).Return(conflicts.Verdict{ConflictingOrderIDs: []string{}}, nil)

	resp, err := f.svc.Create(ctx, req)
	require.NoError(t, err)
	assert.False(t, resp.Conflicts.HasConflict)
}

func TestCreate_ConflictCheckFailureKeepsOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.quoter.On("Execute", ctx, mock.Anything).Return(tableQuote(), nil)
	f.orders.On("Create", ctx, mock.Anything).
		Return(func(o *domain.ServiceOrder) *domain.ServiceOrder { return assignOrderID(o) }, nil)
	f.appointments.On("Create", ctx, mock.Anything).
		Return(func(a *domain.Appointment) *domain.Appointment { return assignAppointmentID(a) }, nil)
	f.checker.On("Check", ctx, mock.Anything).Return(conflicts.Verdict{}, errors.New("malformed"))

	resp, err := f.svc.Create(ctx, transferRequest())
	require.NoError(t, err)
	assert.Equal(t, "order-1", resp.Order.ID)
	assert.Nil(t, resp.Conflicts)
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     func() *models.CreateOrderRequest
		setup   func(f *fixture)
		wantErr error
	}{
		{
			name: "supplier without outsourcing",
			req: func() *models.CreateOrderRequest {
				r := transferRequest()
				r.SupplierID = ptr.Ptr("sup-1")
				return r
			},
			setup:   func(f *fixture) {},
			wantErr: ErrInvalidInput,
		},
		{
			name: "outsourced without supplier",
			req: func() *models.CreateOrderRequest {
				r := transferRequest()
				r.Outsourcing = "driver_only"
				return r
			},
			setup:   func(f *fixture) {},
			wantErr: ErrInvalidInput,
		},
		{
			name: "transfer without end",
			req: func() *models.CreateOrderRequest {
				r := transferRequest()
				r.End = nil
				return r
			},
			setup:   func(f *fixture) {},
			wantErr: ErrInvalidInput,
		},
		{
			name: "end equals start",
			req: func() *models.CreateOrderRequest {
				r := transferRequest()
				r.End = ptr.Ptr(start)
				return r
			},
			setup:   func(f *fixture) {},
			wantErr: ErrInvalidInput,
		},
		{
			name: "no active rate",
			req:  transferRequest,
			setup: func(f *fixture) {
				f.quoter.On("Execute", mock.Anything, mock.Anything).Return(nil, quote_price.ErrRateNotFound)
			},
			wantErr: ErrRateNotFound,
		},
		{
			name: "unknown vehicle",
			req:  transferRequest,
			setup: func(f *fixture) {
				f.quoter.On("Execute", mock.Anything, mock.Anything).Return(nil, quote_price.ErrUnknownVehicleClass)
			},
			wantErr: ErrUnknownVehicleClass,
		},
		{
			name: "order persistence fails",
			req:  transferRequest,
			setup: func(f *fixture) {
				f.quoter.On("Execute", mock.Anything, mock.Anything).Return(tableQuote(), nil)
				f.orders.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))
			},
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)

			_, err := f.svc.Create(context.Background(), tt.req())
			assert.ErrorIs(t, err, tt.wantErr)
			f.appointments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestGetByID(t *testing.T) {
	t.Run("with schedule", func(t *testing.T) {
		f := newFixture()
		f.orders.On("GetByID", mock.Anything, "order-1").Return(&domain.ServiceOrder{ID: "order-1"}, nil)
		f.appointments.On("GetByOrderID", mock.Anything, "order-1").
			Return(&domain.Appointment{ID: "appt-1", Start: start, End: start.Add(time.Hour)}, nil)

		resp, err := f.svc.GetByID(context.Background(), "order-1")
		require.NoError(t, err)
		require.NotNil(t, resp.Schedule)
		assert.Equal(t, start, resp.Schedule.Start)
	})

	t.Run("without schedule", func(t *testing.T) {
		f := newFixture()
		f.orders.On("GetByID", mock.Anything, "order-1").Return(&domain.ServiceOrder{ID: "order-1"}, nil)
		f.appointments.On("GetByOrderID", mock.Anything, "order-1").Return(nil, appointmentRepo.ErrAppointmentNotFound)

		resp, err := f.svc.GetByID(context.Background(), "order-1")
		require.NoError(t, err)
		assert.Nil(t, resp.Schedule)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		f.orders.On("GetByID", mock.Anything, "missing").Return(nil, orderRepo.ErrOrderNotFound)

		_, err := f.svc.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		current domain.OrderStatus
		next    string
		wantErr error
	}{
		{name: "reserved to in_progress", current: domain.OrderReserved, next: "in_progress"},
		{name: "in_progress to completed", current: domain.OrderInProgress, next: "completed"},
		{name: "reserved to completed", current: domain.OrderReserved, next: "completed", wantErr: ErrInvalidTransition},
		{name: "completed is terminal", current: domain.OrderCompleted, next: "in_progress", wantErr: ErrInvalidTransition},
		{name: "cancel through status", current: domain.OrderReserved, next: "cancelled", wantErr: ErrUseCancel},
		{name: "unknown status", current: domain.OrderReserved, next: "archived", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.orders.On("GetByID", mock.Anything, "order-1").Return(&domain.ServiceOrder{ID: "order-1", Status: tt.current}, nil)
			f.orders.On("UpdateStatus", mock.Anything, "order-1", domain.OrderStatus(tt.next)).Return(nil)

			resp, err := f.svc.UpdateStatus(context.Background(), "order-1", &models.UpdateStatusRequest{Status: tt.next})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.OrderStatus(tt.next), resp.Status)
		})
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	f := newFixture()
	f.orders.On("GetByID", mock.Anything, "missing").Return(nil, orderRepo.ErrOrderNotFound)

	_, err := f.svc.UpdateStatus(context.Background(), "missing", &models.UpdateStatusRequest{Status: "in_progress"})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatus_ConcurrentTerminalStatus(t *testing.T) {
	f := newFixture()
	f.orders.On("GetByID", mock.Anything, "order-1").Return(&domain.ServiceOrder{ID: "order-1", Status: domain.OrderInProgress}, nil)
	f.orders.On("UpdateStatus", mock.Anything, "order-1", domain.OrderCompleted).Return(orderRepo.ErrStatusConflict)

	resp, err := f.svc.UpdateStatus(context.Background(), "order-1", &models.UpdateStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, resp)
	f.orders.AssertExpectations(t)
}
