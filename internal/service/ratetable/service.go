package ratetable

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	rateRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/rate"
	vehicleRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-TransferService/internal/service/ratetable/models"
)

// Service сервис управления прайсом
type Service struct {
	rateRepo    RateRepository
	vehicleRepo VehicleRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса прайса
func NewService(rateRepo RateRepository, vehicleRepo VehicleRepository, logger Logger) *Service {
	return &Service{
		rateRepo:    rateRepo,
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

// List возвращает все строки прайса, включая выключенные
func (s *Service) List(ctx context.Context) (*models.RateListResponse, error) {
	s.logger.Info("List: fetching rate table")

	rows, err := s.rateRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d rows", len(rows))
	return models.FromDomainRateList(rows), nil
}

// Create добавляет строку прайса. Класс автомобиля должен быть в каталоге
func (s *Service) Create(ctx context.Context, req *models.CreateRateRequest) (*domain.RateRow, error) {
	s.logger.Info("Create: kind=%s, vehicle=%s, armored=%t, driver=%s, price=%s",
		req.ServiceKind, req.VehicleClass, req.Armored, req.DriverClass, req.ClientPrice)

	// 1. Проверка инвариантов строки
	row, err := req.ToDomainRateRow()
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Класс автомобиля из каталога
	if _, err := s.vehicleRepo.GetByClass(ctx, row.VehicleClass); err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Warn("Create: vehicle class=%s not found", row.VehicleClass)
			return nil, ErrUnknownVehicleClass
		}
		s.logger.Error("Create: failed to get vehicle class=%s: %v", row.VehicleClass, err)
		return nil, fmt.Errorf("%w: Create - vehicle lookup: %v", ErrInternal, err)
	}

	// 3. Сохранение
	created, err := s.rateRepo.Create(ctx, &row)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created rate id=%s", created.ID)
	return created, nil
}

// SetActive включает или выключает строку прайса
func (s *Service) SetActive(ctx context.Context, id string, active bool) (*domain.RateRow, error) {
	s.logger.Info("SetActive: rate id=%s, active=%t", id, active)

	if err := s.rateRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, rateRepo.ErrRateNotFound) {
			s.logger.Warn("SetActive: rate id=%s not found", id)
			return nil, ErrRateNotFound
		}
		s.logger.Error("SetActive: repository error for rate id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}

	row, err := s.rateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rateRepo.ErrRateNotFound) {
			return nil, ErrRateNotFound
		}
		s.logger.Error("SetActive: failed to reload rate id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: SetActive - reload: %v", ErrInternal, err)
	}

	s.logger.Info("SetActive: rate id=%s is now active=%t", id, row.Active)
	return row, nil
}
