package check_conflicts

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/internal/rules/conflicts"
)

// UseCase use case проверки конфликтов для предлагаемой записи агенды
type UseCase struct {
	appointmentRepo AppointmentRepository
	detector        Detector
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	detector Detector,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		detector:        detector,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute проверяет предлагаемую запись против сохранённых
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckConflicts: %s - %s, vehicle=%s, armored=%t, driver=%s, outsourcing=%s",
		req.Start.Format(domain.DateTimeFormat), req.End.Format(domain.DateTimeFormat),
		req.VehicleClass, req.Armored, req.DriverClass, req.Outsourcing)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckConflicts: validation failed: %v", err)
		return nil, err
	}

	verdict, err := uc.Check(ctx, req.candidate())
	if err != nil {
		return nil, err
	}
	return &verdict, nil
}

// Check проверяет готового кандидата: используется и при создании заказа
func (uc *UseCase) Check(ctx context.Context, candidate domain.ScheduledOrder) (conflicts.Verdict, error) {
	// Пересечься могут только записи из интервала кандидата
	others, err := uc.appointmentRepo.ListWithOrders(ctx, candidate.Appointment.Start, candidate.Appointment.End)
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to list appointments: %v", err)
		return conflicts.Verdict{}, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	if err := conflicts.ValidateEntries(others); err != nil {
		uc.logger.Error("CheckConflicts: %v", err)
		return conflicts.Verdict{}, fmt.Errorf("%w: %v", ErrMalformedAppointment, err)
	}

	verdict := uc.detector.FindConflicts(candidate, others)

	if verdict.VehicleConflict {
		uc.metrics.ObserveConflict("vehicle")
	}
	if verdict.DriverConflict {
		uc.metrics.ObserveConflict("driver")
	}

	if verdict.HasConflict {
		uc.logger.Warn("CheckConflicts: conflict with orders=%v, vehicle=%t, driver=%t",
			verdict.ConflictingOrderIDs, verdict.VehicleConflict, verdict.DriverConflict)
	} else {
		uc.logger.Info("CheckConflicts: no conflicts among %d appointments", len(others))
	}

	return verdict, nil
}
