package check_conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/internal/rules/conflicts"
	"github.com/m04kA/SMC-TransferService/pkg/ptr"
)

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) ListWithOrders(ctx context.Context, from, to time.Time) ([]domain.ScheduledOrder, error) {
	args := m.Called(ctx, from, to)
	items, _ := args.Get(0).([]domain.ScheduledOrder)
	return items, args.Error(1)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) ObserveConflict(resource string) {
	m.Called(resource)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var t0 = time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)

func existing(id, orderID, vehicle, driver string, from, to time.Time) domain.ScheduledOrder {
	return domain.ScheduledOrder{
		Appointment: domain.Appointment{ID: id, OrderID: orderID, Start: from, End: to, Kind: domain.AppointmentService},
		Order: &domain.ServiceOrder{
			ID: orderID, VehicleClass: vehicle, DriverClass: driver,
			Outsourcing: domain.OutsourcingNone, Status: domain.OrderReserved,
		},
	}
}

func sedanRequest() *Request {
	return &Request{
		Start:        t0,
		End:          t0.Add(2 * time.Hour),
		VehicleClass: "sedan",
		DriverClass:  "mono",
	}
}

func TestExecute_FlagsSameVehicle(t *testing.T) {
	repo := &mockAppointmentRepo{}
	metrics := &mockMetrics{}
	uc := NewUseCase(repo, conflicts.NewPairwise(), metrics, nopLogger{})

	repo.On("ListWithOrders", mock.Anything, t0, t0.Add(2*time.Hour)).Return([]domain.ScheduledOrder{
		existing("a-1", "o-1", "sedan", "bilingual", t0.Add(time.Hour), t0.Add(3*time.Hour)),
	}, nil)
	metrics.On("ObserveConflict", "vehicle").Once()

	resp, err := uc.Execute(context.Background(), sedanRequest())
	require.NoError(t, err)
	assert.True(t, resp.HasConflict)
	assert.True(t, resp.VehicleConflict)
	assert.False(t, resp.DriverConflict)
	assert.Equal(t, []string{"o-1"}, resp.ConflictingOrderIDs)
	metrics.AssertExpectations(t)
}

func TestExecute_DifferentResourcesNoConflict(t *testing.T) {
	repo := &mockAppointmentRepo{}
	metrics := &mockMetrics{}
	uc := NewUseCase(repo, conflicts.NewSweep(), metrics, nopLogger{})

	repo.On("ListWithOrders", mock.Anything, mock.Anything, mock.Anything).Return([]domain.ScheduledOrder{
		existing("a-1", "o-1", "suv", "bilingual", t0, t0.Add(time.Hour)),
	}, nil)

	resp, err := uc.Execute(context.Background(), sedanRequest())
	require.NoError(t, err)
	assert.False(t, resp.HasConflict)
	assert.Empty(t, resp.ConflictingOrderIDs)
	metrics.AssertNotCalled(t, "ObserveConflict", mock.Anything)
}

func TestExecute_ExcludesItself(t *testing.T) {
	repo := &mockAppointmentRepo{}
	uc := NewUseCase(repo, conflicts.NewPairwise(), &mockMetrics{}, nopLogger{})

	repo.On("ListWithOrders", mock.Anything, mock.Anything, mock.Anything).Return([]domain.ScheduledOrder{
		existing("a-1", "o-1", "sedan", "mono", t0, t0.Add(2*time.Hour)),
	}, nil)

	req := sedanRequest()
	req.AppointmentID = "a-1"
	req.OrderID = "o-1"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.HasConflict)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     func() *Request
		setup   func(repo *mockAppointmentRepo)
		wantErr error
	}{
		{
			name: "end before start",
			req: func() *Request {
				r := sedanRequest()
				r.End = r.Start
				return r
			},
			setup:   func(repo *mockAppointmentRepo) {},
			wantErr: ErrInvalidInput,
		},
		{
			name: "supplier without outsourcing",
			req: func() *Request {
				r := sedanRequest()
				r.SupplierID = ptr.Ptr("sup-1")
				return r
			},
			setup:   func(repo *mockAppointmentRepo) {},
			wantErr: ErrInvalidInput,
		},
		{
			name: "outsourced without supplier",
			req: func() *Request {
				r := sedanRequest()
				r.Outsourcing = domain.OutsourcingDriverOnly
				return r
			},
			setup:   func(repo *mockAppointmentRepo) {},
			wantErr: ErrInvalidInput,
		},
		{
			name: "malformed stored appointment",
			req:  sedanRequest,
			setup: func(repo *mockAppointmentRepo) {
				repo.On("ListWithOrders", mock.Anything, mock.Anything, mock.Anything).Return([]domain.ScheduledOrder{
					existing("bad", "o-1", "sedan", "mono", t0.Add(time.Hour), t0.Add(time.Hour)),
				}, nil)
			},
			wantErr: ErrMalformedAppointment,
		},
		{
			name: "storage failure",
			req:  sedanRequest,
			setup: func(repo *mockAppointmentRepo) {
				repo.On("ListWithOrders", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("io"))
			},
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockAppointmentRepo{}
			tt.setup(repo)
			uc := NewUseCase(repo, conflicts.NewPairwise(), &mockMetrics{}, nopLogger{})

			_, err := uc.Execute(context.Background(), tt.req())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
