package cancel_order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/appointment"
	orderRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/order"
	settingsRepo "github.com/m04kA/SMC-TransferService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-TransferService/internal/rules/cancellation"
)

// UseCase use case отмены заказа со штрафом по политике отмены
type UseCase struct {
	orderRepo       OrderRepository
	appointmentRepo AppointmentRepository
	settingsRepo    SettingsRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	appointmentRepo AppointmentRepository,
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:       orderRepo,
		appointmentRepo: appointmentRepo,
		settingsRepo:    settingsRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		metrics:         metrics,
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute отменяет заказ: считает штраф и сохраняет его вместе со статусом cancelled
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelOrder: order=%s", req.OrderID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelOrder: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	// 2. Чтение заказа и запись штрафа в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Заказ
		order, err := uc.orderRepo.GetByID(txCtx, req.OrderID)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				uc.logger.Warn("CancelOrder: order=%s not found", req.OrderID)
				return ErrOrderNotFound
			}
			uc.logger.Error("CancelOrder: failed to get order=%s: %v", req.OrderID, err)
			return fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
		}

		if !order.CanBeCancelled() {
			uc.logger.Warn("CancelOrder: order=%s has status=%s", req.OrderID, order.Status)
			return fmt.Errorf("%w: status is %s", ErrCannotCancel, order.Status)
		}

		// 2.2. Время начала услуги
		appt, err := uc.appointmentRepo.GetByOrderID(txCtx, order.ID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CancelOrder: order=%s has no appointment", order.ID)
				return ErrScheduleNotFound
			}
			uc.logger.Error("CancelOrder: failed to get appointment for order=%s: %v", order.ID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.3. Политика отмены
		settings, err := uc.settingsRepo.Get(txCtx)
		if err != nil {
			if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				uc.logger.Warn("CancelOrder: settings are not configured")
				return ErrNoPolicyConfigured
			}
			uc.logger.Error("CancelOrder: failed to get settings: %v", err)
			return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}

		// 2.4. Расчёт штрафа
		cancelledAt := uc.timeProvider.Now().UTC()
		fee, err := cancellation.ComputeFee(settings.CancellationPolicy, appt.Start, cancelledAt, order.TotalPrice)
		if err != nil {
			if errors.Is(err, cancellation.ErrNoPolicy) {
				uc.logger.Warn("CancelOrder: cancellation policy is empty")
				return ErrNoPolicyConfigured
			}
			return fmt.Errorf("%w: failed to compute fee: %v", ErrInternal, err)
		}

		// 2.5. Сохранение
		c := domain.Cancellation{
			FeePercent:  fee.FeePercent,
			FeeAmount:   fee.FeeAmount,
			WindowLabel: fee.WindowLabel,
			Reason:      strings.TrimSpace(req.Reason),
			CancelledAt: cancelledAt,
		}
		if err := uc.orderRepo.SaveCancellation(txCtx, order.ID, c); err != nil {
			// Заказ успели завершить или отменить в параллельной транзакции
			if errors.Is(err, orderRepo.ErrStatusConflict) {
				uc.logger.Warn("CancelOrder: order=%s changed status concurrently", order.ID)
				return fmt.Errorf("%w: order changed concurrently", ErrCannotCancel)
			}
			uc.logger.Error("CancelOrder: failed to save cancellation for order=%s: %v", order.ID, err)
			return fmt.Errorf("%w: failed to save cancellation: %v", ErrInternal, err)
		}

		result = &Response{
			OrderID:        order.ID,
			Status:         domain.OrderCancelled,
			ScheduledStart: appt.Start,
			CancelledAt:    cancelledAt,
			LeadTime:       fee.LeadTime,
			FeePercent:     fee.FeePercent,
			FeeAmount:      fee.FeeAmount,
			WindowLabel:    fee.WindowLabel,
			OrderTotal:     order.TotalPrice,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.ObserveCancellationFee(result.WindowLabel)
	uc.logger.Info("CancelOrder: order=%s cancelled, lead=%s, window=%q, fee=%s%% (%s)",
		result.OrderID, result.LeadTime, result.WindowLabel, result.FeePercent, result.FeeAmount)

	return result, nil
}
