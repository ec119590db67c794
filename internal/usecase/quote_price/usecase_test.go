package quote_price

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/settings"
	vehicleRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-TransferService/pkg/money"
	"github.com/m04kA/SMC-TransferService/pkg/ptr"
)

type fixture struct {
	rates    *mockRateRepo
	settings *mockSettingsRepo
	vehicles *mockVehicleRepo
	metrics  *mockMetrics
	uc       *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		rates:    &mockRateRepo{},
		settings: &mockSettingsRepo{},
		vehicles: &mockVehicleRepo{},
		metrics:  &mockMetrics{},
	}
	f.uc = NewUseCase(f.rates, f.settings, f.vehicles, f.metrics, nopLogger{})
	return f
}

func sedanRequest() *Request {
	return &Request{
		ServiceKind:  domain.ServiceTransfer,
		VehicleClass: "sedan",
		DriverClass:  "mono",
	}
}

func defaultSettings() *domain.Settings {
	return &domain.Settings{
		SystemTaxPercent:   money.PercentFromInt(10),
		CancellationPolicy: domain.DefaultCancellationPolicy(),
	}
}

func sedanRow() domain.RateRow {
	return domain.RateRow{
		ID:            "rate-1",
		ServiceKind:   domain.ServiceTransfer,
		VehicleClass:  "sedan",
		DriverClass:   "mono",
		ClientPrice:   money.FromUnits(100),
		SupplierPrice: money.FromUnits(70),
		Adjustments:   []domain.Adjustment{domain.NewFixedAdjustment(money.FromUnits(20))},
		Active:        true,
	}
}

func TestExecute_FromRateTable(t *testing.T) {
	f := newFixture()
	f.vehicles.On("GetByClass", mock.Anything, "sedan").Return(&domain.Vehicle{Class: "sedan", Seats: 3, Active: true}, nil)
	f.settings.On("Get", mock.Anything).Return(defaultSettings(), nil)
	f.rates.On("ListActive", mock.Anything).Return([]domain.RateRow{sedanRow()}, nil)
	f.metrics.On("ObserveQuote", "table", "ok").Once()

	resp, err := f.uc.Execute(context.Background(), sedanRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.PriceFromTable, resp.PriceSource)
	assert.Equal(t, "rate-1", *resp.RateRowID)
	assert.Equal(t, "120.00", resp.Subtotal.String())
	assert.Equal(t, "12.00", resp.Tax.String())
	assert.Equal(t, "132.00", resp.Total.String())
	assert.Equal(t, money.FromUnits(70), resp.SupplierCost)

	f.metrics.AssertExpectations(t)
}

func TestExecute_ManualOverride(t *testing.T) {
	f := newFixture()
	f.vehicles.On("GetByClass", mock.Anything, "sedan").Return(&domain.Vehicle{Class: "sedan", Seats: 3, Active: true}, nil)
	f.settings.On("Get", mock.Anything).Return(defaultSettings(), nil)
	f.metrics.On("ObserveQuote", "manual", "ok").Once()

	req := sedanRequest()
	req.ManualAmount = ptr.Ptr(money.MustParse("250"))

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.PriceManual, resp.PriceSource)
	assert.Nil(t, resp.RateRowID)
	assert.Equal(t, "275.00", resp.Total.String())
	f.rates.AssertNotCalled(t, "ListActive", mock.Anything)
}

func TestExecute_RateNotFound(t *testing.T) {
	f := newFixture()
	f.vehicles.On("GetByClass", mock.Anything, "sedan").Return(&domain.Vehicle{Class: "sedan", Seats: 3, Active: true}, nil)
	f.settings.On("Get", mock.Anything).Return(defaultSettings(), nil)
	f.rates.On("ListActive", mock.Anything).Return([]domain.RateRow{}, nil)
	f.metrics.On("ObserveQuote", "table", "not_found").Once()

	_, err := f.uc.Execute(context.Background(), sedanRequest())
	assert.ErrorIs(t, err, ErrRateNotFound)
	f.metrics.AssertExpectations(t)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		setup   func(f *fixture)
		wantErr error
	}{
		{
			name: "hourly without package",
			req: &Request{
				ServiceKind: domain.ServiceHourly, VehicleClass: "sedan", DriverClass: "mono",
			},
			setup:   func(f *fixture) {},
			wantErr: ErrInvalidInput,
		},
		{
			name: "negative manual amount",
			req: func() *Request {
				r := sedanRequest()
				r.ManualAmount = ptr.Ptr(money.FromUnits(-1))
				return r
			}(),
			setup:   func(f *fixture) {},
			wantErr: ErrInvalidInput,
		},
		{
			name: "unknown vehicle",
			req:  sedanRequest(),
			setup: func(f *fixture) {
				f.vehicles.On("GetByClass", mock.Anything, "sedan").Return(nil, vehicleRepo.ErrVehicleNotFound)
			},
			wantErr: ErrUnknownVehicleClass,
		},
		{
			name: "inactive vehicle",
			req:  sedanRequest(),
			setup: func(f *fixture) {
				f.vehicles.On("GetByClass", mock.Anything, "sedan").Return(&domain.Vehicle{Class: "sedan", Seats: 3}, nil)
			},
			wantErr: ErrUnknownVehicleClass,
		},
		{
			name: "settings missing",
			req:  sedanRequest(),
			setup: func(f *fixture) {
				f.vehicles.On("GetByClass", mock.Anything, "sedan").Return(&domain.Vehicle{Class: "sedan", Seats: 3, Active: true}, nil)
				f.settings.On("Get", mock.Anything).Return(nil, settingsRepo.ErrSettingsNotFound)
			},
			wantErr: ErrSettingsNotConfigured,
		},
		{
			name: "rate storage failure",
			req:  sedanRequest(),
			setup: func(f *fixture) {
				f.vehicles.On("GetByClass", mock.Anything, "sedan").Return(&domain.Vehicle{Class: "sedan", Seats: 3, Active: true}, nil)
				f.settings.On("Get", mock.Anything).Return(defaultSettings(), nil)
				f.rates.On("ListActive", mock.Anything).Return(nil, errors.New("disk"))
			},
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)

			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
