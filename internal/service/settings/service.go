package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-TransferService/internal/service/settings/models"
	"github.com/m04kA/SMC-TransferService/pkg/money"
)

// Service сервис глобальных настроек и каталога автомобилей
type Service struct {
	settingsRepo SettingsRepository
	vehicleRepo  VehicleRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	vehicleRepo VehicleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		vehicleRepo:  vehicleRepo,
		txManager:    txManager,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Get получает текущие настройки
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings")

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Get: settings not found")
			return nil, ErrSettingsNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// Update заменяет налог и политику отмены. Новая политика применяется только к будущим отменам
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: tax=%s, windows=%d", req.SystemTaxPercent, len(req.CancellationPolicy))

	settings, err := req.ToDomainSettings()
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	settings.UpdatedAt = s.timeProvider.Now().UTC()

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: settings saved")
	return models.FromDomainSettings(settings), nil
}

// ListVehicles возвращает каталог классов автомобилей
func (s *Service) ListVehicles(ctx context.Context) (*models.VehicleListResponse, error) {
	vehicles, err := s.vehicleRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListVehicles: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListVehicles - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainVehicles(vehicles), nil
}

// EnsureDefaults при первом запуске создаёт политику отмены по умолчанию, налог и каталог.
// Существующие данные не перезаписываются
func (s *Service) EnsureDefaults(ctx context.Context, defaultTax money.Percent) error {
	return s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Настройки
		_, err := s.settingsRepo.Get(ctx)
		switch {
		case errors.Is(err, settingsRepo.ErrSettingsNotFound):
			defaults := &domain.Settings{
				SystemTaxPercent:   defaultTax,
				CancellationPolicy: domain.DefaultCancellationPolicy(),
				UpdatedAt:          s.timeProvider.Now().UTC(),
			}
			if err := defaults.Validate(); err != nil {
				return fmt.Errorf("%w: default settings: %v", ErrInvalidInput, err)
			}
			if err := s.settingsRepo.Save(ctx, defaults); err != nil {
				return fmt.Errorf("%w: EnsureDefaults - save settings: %v", ErrInternal, err)
			}
			s.logger.Info("EnsureDefaults: seeded default settings (tax=%s)", defaultTax)
		case err != nil:
			return fmt.Errorf("%w: EnsureDefaults - get settings: %v", ErrInternal, err)
		}

		// 2. Каталог автомобилей
		vehicles, err := s.vehicleRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("%w: EnsureDefaults - list vehicles: %v", ErrInternal, err)
		}
		if len(vehicles) > 0 {
			return nil
		}

		for _, v := range domain.DefaultVehicleCatalog() {
			if err := s.vehicleRepo.Upsert(ctx, v); err != nil {
				return fmt.Errorf("%w: EnsureDefaults - upsert vehicle %s: %v", ErrInternal, v.Class, err)
			}
		}
		s.logger.Info("EnsureDefaults: seeded default vehicle catalog")
		return nil
	})
}
