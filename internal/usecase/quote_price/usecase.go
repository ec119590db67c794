package quote_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/settings"
	vehicleRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-TransferService/internal/rules/pricing"
	"github.com/m04kA/SMC-TransferService/pkg/ptr"
)

// UseCase use case расчёта цены заказа
type UseCase struct {
	rateRepo     RateRepository
	settingsRepo SettingsRepository
	vehicleRepo  VehicleRepository
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	rateRepo RateRepository,
	settingsRepo SettingsRepository,
	vehicleRepo VehicleRepository,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		rateRepo:     rateRepo,
		settingsRepo: settingsRepo,
		vehicleRepo:  vehicleRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute рассчитывает цену: по прайсу или по ручной сумме, плюс системный налог
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuotePrice: kind=%s, package=%v, vehicle=%s, armored=%t, driver=%s, manual=%t",
		req.ServiceKind, ptr.Value(req.HourPackage), req.VehicleClass, req.Armored, req.DriverClass, req.ManualAmount != nil)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuotePrice: validation failed: %v", err)
		return nil, err
	}

	// 2. Класс автомобиля должен быть в каталоге
	vehicle, err := uc.vehicleRepo.GetByClass(ctx, req.VehicleClass)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			uc.logger.Warn("QuotePrice: vehicle class=%s not found", req.VehicleClass)
			return nil, ErrUnknownVehicleClass
		}
		uc.logger.Error("QuotePrice: failed to get vehicle class=%s: %v", req.VehicleClass, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}
	if !vehicle.Active {
		uc.logger.Warn("QuotePrice: vehicle class=%s is inactive", req.VehicleClass)
		return nil, ErrUnknownVehicleClass
	}

	// 3. Системный налог
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Warn("QuotePrice: settings are not configured")
			return nil, ErrSettingsNotConfigured
		}
		uc.logger.Error("QuotePrice: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 4. Ручная цена имеет приоритет над прайсом
	if req.ManualAmount != nil {
		quote := pricing.CalculateManual(*req.ManualAmount, settings.SystemTaxPercent)
		uc.metrics.ObserveQuote(string(domain.PriceManual), "ok")
		uc.logger.Info("QuotePrice: manual quote subtotal=%s, tax=%s, total=%s", quote.Subtotal, quote.Tax, quote.Total)
		return &Response{
			PriceSource: domain.PriceManual,
			Subtotal:    quote.Subtotal,
			TaxPercent:  quote.TaxPercent,
			Tax:         quote.Tax,
			Total:       quote.Total,
		}, nil
	}

	// 5. Поиск строки прайса
	rows, err := uc.rateRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("QuotePrice: failed to list rates: %v", err)
		return nil, fmt.Errorf("%w: failed to list rates: %v", ErrInternal, err)
	}

	row, ok := pricing.Resolve(rows, req.RateRequest())
	if !ok {
		uc.metrics.ObserveQuote(string(domain.PriceFromTable), "not_found")
		uc.logger.Warn("QuotePrice: no active rate among %d rows", len(rows))
		return nil, ErrRateNotFound
	}

	quote := pricing.CalculateRow(row, settings.SystemTaxPercent)
	uc.metrics.ObserveQuote(string(domain.PriceFromTable), "ok")
	uc.logger.Info("QuotePrice: rate=%s, subtotal=%s, tax=%s, total=%s", row.ID, quote.Subtotal, quote.Tax, quote.Total)

	return &Response{
		PriceSource:  domain.PriceFromTable,
		RateRowID:    ptr.Ptr(row.ID),
		SupplierCost: row.SupplierPrice,
		Subtotal:     quote.Subtotal,
		TaxPercent:   quote.TaxPercent,
		Tax:          quote.Tax,
		Total:        quote.Total,
	}, nil
}
