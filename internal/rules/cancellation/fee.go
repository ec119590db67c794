// Package cancellation считает штраф за отмену заказа по ступенчатой политике.
package cancellation

import (
	"errors"
	"sort"
	"time"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/pkg/money"
)

// ErrNoPolicy политика отмены не настроена. Отличается от штрафа 0%
var ErrNoPolicy = errors.New("cancellation: no cancellation policy configured")

// Fee результат расчёта штрафа
type Fee struct {
	FeePercent  money.Percent `json:"feePercent"`
	FeeAmount   money.Money   `json:"feeAmount"`
	WindowLabel string        `json:"windowLabel"`
	LeadTime    time.Duration `json:"-"`
}

// ComputeFee выбирает окно политики по времени до начала услуги и считает штраф от итоговой цены.
// Окна перебираются по убыванию порога, применяется первое с lead >= порога.
// Если не подошло ни одно (в том числе отмена после начала), применяется окно с наименьшим порогом.
func ComputeFee(policy []domain.CancellationWindow, scheduledStart, cancelledAt time.Time, orderTotal money.Money) (Fee, error) {
	if len(policy) == 0 {
		return Fee{}, ErrNoPolicy
	}

	window, lead := SelectWindow(policy, scheduledStart, cancelledAt)
	return Fee{
		FeePercent:  window.FeePercent,
		FeeAmount:   orderTotal.MulPercent(window.FeePercent),
		WindowLabel: window.Label,
		LeadTime:    lead,
	}, nil
}

// SelectWindow возвращает применимое окно и время до начала; policy не должна быть пустой
func SelectWindow(policy []domain.CancellationWindow, scheduledStart, cancelledAt time.Time) (domain.CancellationWindow, time.Duration) {
	sorted := make([]domain.CancellationWindow, len(policy))
	copy(sorted, policy)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ThresholdHours > sorted[j].ThresholdHours
	})

	lead := scheduledStart.Sub(cancelledAt)
	for _, w := range sorted {
		if lead >= w.Threshold() {
			return w, lead
		}
	}
	return sorted[len(sorted)-1], lead
}
