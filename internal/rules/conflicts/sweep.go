package conflicts

import (
	"sort"

	"github.com/m04kA/SMC-TransferService/internal/domain"
)

// Sweep поиск пересечений заметающей прямой: сортировка по началу и список открытых интервалов.
// Пары сравниваются только если интервалы пересекаются, поэтому на разреженной агенде
// Scan работает за O(n log n + k), где k - число пересекающихся пар.
type Sweep struct{}

// NewSweep создаёт детектор заметающей прямой
func NewSweep() *Sweep {
	return &Sweep{}
}

// FindConflicts делегирует Pairwise.FindConflicts: для одного кандидата сортировка не даёт выигрыша над линейным проходом
func (s *Sweep) FindConflicts(candidate domain.ScheduledOrder, others []domain.ScheduledOrder) Verdict {
	return (&Pairwise{}).FindConflicts(candidate, others)
}

// Scan находит все пересекающиеся пары одним проходом по отсортированным началам
func (s *Sweep) Scan(entries []domain.ScheduledOrder) []Verdict {
	idx := make([]int, 0, len(entries))
	for i, e := range entries {
		if relevant(e) {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return entries[idx[a]].Appointment.Start.Before(entries[idx[b]].Appointment.Start)
	})

	peers := make([][]int, len(entries))
	open := make([]int, 0)
	for _, i := range idx {
		cur := entries[i].Appointment

		// закрываем интервалы, закончившиеся не позже начала текущего: стык не пересечение
		kept := open[:0]
		for _, j := range open {
			if entries[j].Appointment.End.After(cur.Start) {
				kept = append(kept, j)
			}
		}
		open = kept

		for _, j := range open {
			peers[i] = append(peers[i], j)
			peers[j] = append(peers[j], i)
		}
		open = append(open, i)
	}

	result := make([]Verdict, len(entries))
	for i := range entries {
		b := newVerdictBuilder()
		if relevant(entries[i]) {
			// порядок обнаружения как у полного перебора: по позиции во входе
			sort.Ints(peers[i])
			for _, j := range peers[i] {
				b.compare(entries[i].Order, entries[j].Order)
			}
		}
		result[i] = b.verdict()
	}
	return result
}
