// Package conflicts ищет пересечения записей агенды, претендующих на один автомобиль
// или одного водителя. Конфликты носят рекомендательный характер: ничего не блокируется.
package conflicts

import (
	"fmt"

	"github.com/m04kA/SMC-TransferService/internal/domain"
)

// Verdict результат проверки одной записи
type Verdict struct {
	HasConflict         bool     `json:"hasConflict"`
	VehicleConflict     bool     `json:"vehicleConflict"`
	DriverConflict      bool     `json:"driverConflict"`
	ConflictingOrderIDs []string `json:"conflictingOrderIds"`
}

// Detector проверка конфликтов. Реализации взаимозаменяемы и дают одинаковый результат
type Detector interface {
	// FindConflicts проверяет кандидата против остальных записей
	FindConflicts(candidate domain.ScheduledOrder, others []domain.ScheduledOrder) Verdict

	// Scan проверяет каждую запись против всех остальных; результат в порядке входа
	Scan(entries []domain.ScheduledOrder) []Verdict
}

// ValidateEntries отклоняет записи с End <= Start. Детектор рассчитывает на уже проверенные данные
func ValidateEntries(entries []domain.ScheduledOrder) error {
	for _, e := range entries {
		if !e.Appointment.End.After(e.Appointment.Start) {
			return fmt.Errorf("%w: appointment %s", domain.ErrInvalidInterval, e.Appointment.ID)
		}
	}
	return nil
}

// relevant запись участвует в проверке: есть заказ и он не отменён
func relevant(e domain.ScheduledOrder) bool {
	return e.Order != nil && e.Order.IsActive()
}

func sameAppointment(a, b domain.ScheduledOrder) bool {
	return a.Appointment.ID != "" && a.Appointment.ID == b.Appointment.ID
}

// verdictBuilder накапливает результат: флаги по OR, заказы без повторов в порядке обнаружения
type verdictBuilder struct {
	v    Verdict
	seen map[string]struct{}
}

func newVerdictBuilder() *verdictBuilder {
	return &verdictBuilder{
		v:    Verdict{ConflictingOrderIDs: []string{}},
		seen: make(map[string]struct{}),
	}
}

// compare сравнивает ресурсы двух пересекающихся по времени записей
func (b *verdictBuilder) compare(candidate, peer *domain.ServiceOrder) {
	vehicle := candidate.VehicleKey() == peer.VehicleKey()
	driver := candidate.DriverKey() == peer.DriverKey()
	if !vehicle && !driver {
		return
	}

	b.v.HasConflict = true
	b.v.VehicleConflict = b.v.VehicleConflict || vehicle
	b.v.DriverConflict = b.v.DriverConflict || driver

	if _, ok := b.seen[peer.ID]; !ok {
		b.seen[peer.ID] = struct{}{}
		b.v.ConflictingOrderIDs = append(b.v.ConflictingOrderIDs, peer.ID)
	}
}

func (b *verdictBuilder) verdict() Verdict {
	return b.v
}
