package conflicts

import (
	"github.com/m04kA/SMC-TransferService/internal/domain"
)

// Pairwise полный перебор пар, O(n^2) на Scan
type Pairwise struct{}

// NewPairwise создаёт детектор полного перебора
func NewPairwise() *Pairwise {
	return &Pairwise{}
}

// FindConflicts проверяет кандидата против каждой из остальных записей
func (p *Pairwise) FindConflicts(candidate domain.ScheduledOrder, others []domain.ScheduledOrder) Verdict {
	b := newVerdictBuilder()
	if !relevant(candidate) {
		return b.verdict()
	}

	interval := candidate.Appointment.Interval()
	for _, other := range others {
		if sameAppointment(candidate, other) || !relevant(other) {
			continue
		}
		if !interval.Overlaps(other.Appointment.Interval()) {
			continue
		}
		b.compare(candidate.Order, other.Order)
	}
	return b.verdict()
}

// Scan проверяет каждую запись против всех остальных
func (p *Pairwise) Scan(entries []domain.ScheduledOrder) []Verdict {
	result := make([]Verdict, len(entries))
	for i := range entries {
		b := newVerdictBuilder()
		if relevant(entries[i]) {
			interval := entries[i].Appointment.Interval()
			for j := range entries {
				if i == j || !relevant(entries[j]) {
					continue
				}
				if interval.Overlaps(entries[j].Appointment.Interval()) {
					b.compare(entries[i].Order, entries[j].Order)
				}
			}
		}
		result[i] = b.verdict()
	}
	return result
}
