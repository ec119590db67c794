package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/appointment"
	orderRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/order"
	"github.com/m04kA/SMC-TransferService/internal/service/orders/models"
	"github.com/m04kA/SMC-TransferService/internal/usecase/quote_price"
)

// Service сервис для работы с заказами
type Service struct {
	orderRepo       OrderRepository
	appointmentRepo AppointmentRepository
	quoter          PriceQuoter
	checker         ConflictChecker
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(
	orderRepo OrderRepository,
	appointmentRepo AppointmentRepository,
	quoter PriceQuoter,
	checker ConflictChecker,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		orderRepo:       orderRepo,
		appointmentRepo: appointmentRepo,
		quoter:          quoter,
		checker:         checker,
		txManager:       txManager,
		logger:          logger,
	}
}

// Create создаёт заказ со статусом reserved и его запись агенды.
// Пересечения с другими заказами не запрещают создание: результат проверки возвращается вместе с заказом
func (s *Service) Create(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	s.logger.Info("Create: client=%s, kind=%s, vehicle=%s, armored=%t, driver=%s, outsourcing=%s",
		req.ClientID, req.ServiceKind, req.VehicleClass, req.Armored, req.DriverClass, req.Outsourcing)

	// 1. Валидация комбинации полей заказа
	order := req.ToDomainOrder()
	if err := order.Validate(); err != nil {
		s.logger.Warn("Create: invalid order: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	start, end, err := req.Schedule()
	if err != nil {
		s.logger.Warn("Create: invalid schedule: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !end.After(start) {
		s.logger.Warn("Create: end=%s is not after start=%s", end, start)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidInterval)
	}

	// 2. Расчёт цены
	quote, err := s.quoter.Execute(ctx, &quote_price.Request{
		ServiceKind:  order.ServiceKind,
		HourPackage:  order.HourPackage,
		VehicleClass: order.VehicleClass,
		Armored:      order.Armored,
		DriverClass:  order.DriverClass,
		ManualAmount: req.ManualAmount,
	})
	if err != nil {
		return nil, s.translateQuoteError(err)
	}

	order.PriceSource = quote.PriceSource
	order.RateRowID = quote.RateRowID
	order.Subtotal = quote.Subtotal
	order.TaxPercent = quote.TaxPercent
	order.TaxAmount = quote.Tax
	order.TotalPrice = quote.Total
	order.SupplierCost = quote.SupplierCost

	// 3. Заказ и запись агенды сохраняются атомарно
	var (
		created     *domain.ServiceOrder
		appointment *domain.Appointment
	)
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var txErr error
		created, txErr = s.orderRepo.Create(ctx, order)
		if txErr != nil {
			return fmt.Errorf("create order: %w", txErr)
		}

		a, txErr := domain.NewAppointment(created.ID, start, end, domain.AppointmentService)
		if txErr != nil {
			return fmt.Errorf("build appointment: %w", txErr)
		}

		appointment, txErr = s.appointmentRepo.Create(ctx, &a)
		if txErr != nil {
			return fmt.Errorf("create appointment: %w", txErr)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Create: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: Create - transaction failed: %v", ErrInternal, err)
	}

	resp := &models.CreateOrderResponse{Order: *models.FromDomain(created, appointment)}

	// 4. Рекомендательная проверка конфликтов: заказ уже создан, ошибка проверки не откатывает его
	verdict, err := s.checker.Check(ctx, domain.ScheduledOrder{Appointment: *appointment, Order: created})
	if err != nil {
		s.logger.Error("Create: conflict check failed for order id=%s: %v", created.ID, err)
	} else {
		resp.Conflicts = &verdict
		if verdict.HasConflict {
			s.logger.Warn("Create: order id=%s overlaps orders=%v", created.ID, verdict.ConflictingOrderIDs)
		}
	}

	s.logger.Info("Create: successfully created order id=%s, total=%s, source=%s",
		created.ID, created.TotalPrice, created.PriceSource)
	return resp, nil
}

// GetByID получает заказ по ID вместе с его интервалом в агенде
func (s *Service) GetByID(ctx context.Context, id string) (*models.OrderResponse, error) {
	s.logger.Info("GetByID: fetching order id=%s", id)

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("GetByID: order id=%s not found", id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("GetByID: repository error for order id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	appointment, err := s.appointmentRepo.GetByOrderID(ctx, id)
	if err != nil {
		if !errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Error("GetByID: failed to get appointment for order id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: GetByID - appointment error: %v", ErrInternal, err)
		}
		s.logger.Warn("GetByID: order id=%s has no appointment", id)
		appointment = nil
	}

	s.logger.Info("GetByID: successfully fetched order id=%s", id)
	return models.FromDomain(order, appointment), nil
}

// UpdateStatus переводит заказ по цепочке reserved -> in_progress -> completed.
// Отмена выполняется только через отдельную операцию, так как она рассчитывает штраф
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.OrderResponse, error) {
	s.logger.Info("UpdateStatus: updating order id=%s to status=%s", id, req.Status)

	next, err := models.ToDomainOrderStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for order id=%s", req.Status, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if next == domain.OrderCancelled {
		s.logger.Warn("UpdateStatus: cancellation requested via status for order id=%s", id)
		return nil, ErrUseCancel
	}

	var updated *domain.ServiceOrder
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		order, txErr := s.orderRepo.GetByID(ctx, id)
		if txErr != nil {
			return txErr
		}

		if !order.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
		}

		if txErr := s.orderRepo.UpdateStatus(ctx, id, next); txErr != nil {
			return txErr
		}

		order.Status = next
		updated = order
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, orderRepo.ErrOrderNotFound):
			s.logger.Warn("UpdateStatus: order id=%s not found", id)
			return nil, ErrOrderNotFound
		case errors.Is(err, ErrInvalidTransition):
			s.logger.Warn("UpdateStatus: order id=%s: %v", id, err)
			return nil, err
		case errors.Is(err, orderRepo.ErrStatusConflict):
			s.logger.Warn("UpdateStatus: order id=%s changed status concurrently", id)
			return nil, fmt.Errorf("%w: order changed concurrently", ErrInvalidTransition)
		default:
			s.logger.Error("UpdateStatus: repository error for order id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("UpdateStatus: successfully updated order id=%s to status=%s", id, next)
	return models.FromDomain(updated, nil), nil
}

// translateQuoteError переводит ошибки расчёта цены в ошибки сервиса
func (s *Service) translateQuoteError(err error) error {
	switch {
	case errors.Is(err, quote_price.ErrRateNotFound):
		s.logger.Warn("Create: no active rate, manual price required")
		return ErrRateNotFound
	case errors.Is(err, quote_price.ErrUnknownVehicleClass):
		s.logger.Warn("Create: unknown vehicle class")
		return ErrUnknownVehicleClass
	case errors.Is(err, quote_price.ErrSettingsNotConfigured):
		s.logger.Warn("Create: settings are not configured")
		return ErrSettingsNotConfigured
	case errors.Is(err, quote_price.ErrInvalidInput):
		s.logger.Warn("Create: quote rejected input: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		s.logger.Error("Create: quote failed: %v", err)
		return fmt.Errorf("%w: quote failed: %v", ErrInternal, err)
	}
}
