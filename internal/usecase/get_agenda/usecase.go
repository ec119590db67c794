package get_agenda

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/internal/rules/conflicts"
)

// UseCase use case получения агенды с отметками о конфликтах
type UseCase struct {
	appointmentRepo AppointmentRepository
	detector        Detector
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, detector Detector, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		detector:        detector,
		logger:          logger,
	}
}

// Execute загружает записи периода и проверяет каждую против остальных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAgenda: from=%s, to=%s",
		req.From.Format(domain.DateTimeFormat), req.To.Format(domain.DateTimeFormat))

	// 1. Валидация периода
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAgenda: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем записи, пересекающие период
	entries, err := uc.appointmentRepo.ListWithOrders(ctx, req.From, req.To)
	if err != nil {
		uc.logger.Error("GetAgenda: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 3. Некорректные интервалы не передаются в детектор
	if err := conflicts.ValidateEntries(entries); err != nil {
		uc.logger.Error("GetAgenda: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedAppointment, err)
	}

	// 4. Записи на границе периода могут пересекаться с записями вне его:
	// догружаем всё, что пересекает общий интервал загруженных записей
	peers := entries
	if hullFrom, hullTo, ok := hull(entries); ok && (hullFrom.Before(req.From) || hullTo.After(req.To)) {
		peers, err = uc.appointmentRepo.ListWithOrders(ctx, hullFrom, hullTo)
		if err != nil {
			uc.logger.Error("GetAgenda: failed to list neighbour appointments: %v", err)
			return nil, fmt.Errorf("%w: failed to list neighbour appointments: %v", ErrInternal, err)
		}
		if err := conflicts.ValidateEntries(peers); err != nil {
			uc.logger.Error("GetAgenda: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrMalformedAppointment, err)
		}
	}

	// 5. Проверка всего набора, в ответ попадают только записи периода
	verdicts := uc.detector.Scan(peers)
	byAppointment := make(map[string]conflicts.Verdict, len(peers))
	for i, p := range peers {
		byAppointment[p.Appointment.ID] = verdicts[i]
	}

	resp := &Response{
		From:  req.From,
		To:    req.To,
		Items: make([]Item, 0, len(entries)),
	}
	for _, e := range entries {
		verdict, ok := byAppointment[e.Appointment.ID]
		if !ok {
			verdict = uc.detector.FindConflicts(e, peers)
		}
		if verdict.HasConflict {
			resp.ConflictCount++
		}
		resp.Items = append(resp.Items, Item{
			Appointment: e.Appointment,
			Order:       e.Order,
			Verdict:     verdict,
		})
	}

	uc.logger.Info("GetAgenda: %d appointments, %d with conflicts", len(resp.Items), resp.ConflictCount)

	return resp, nil
}

// hull возвращает [минимальное начало, максимальный конец) записей
func hull(entries []domain.ScheduledOrder) (from, to time.Time, ok bool) {
	for i, e := range entries {
		if i == 0 || e.Appointment.Start.Before(from) {
			from = e.Appointment.Start
		}
		if i == 0 || e.Appointment.End.After(to) {
			to = e.Appointment.End
		}
	}
	return from, to, len(entries) > 0
}
