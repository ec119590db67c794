package pricing

import (
	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/pkg/money"
)

// Quote результат расчёта цены
type Quote struct {
	Subtotal   money.Money   `json:"subtotal"`
	TaxPercent money.Percent `json:"taxPercent"`
	Tax        money.Money   `json:"tax"`
	Total      money.Money   `json:"total"`
}

// Calculate считает subtotal = base + сумма надбавок, налог и итог.
// Процентные надбавки считаются от исходной базы и друг на друга не накладываются.
func Calculate(base money.Money, adjustments []domain.Adjustment, taxPercent money.Percent) Quote {
	subtotal := base
	for _, adj := range adjustments {
		subtotal = subtotal.Add(adj.Effect(base))
	}
	return withTax(subtotal, taxPercent)
}

// CalculateManual расчёт для цены, введённой вручную, без надбавок
func CalculateManual(amount money.Money, taxPercent money.Percent) Quote {
	return withTax(amount, taxPercent)
}

// CalculateRow расчёт по найденной строке прайса
func CalculateRow(row domain.RateRow, taxPercent money.Percent) Quote {
	return Calculate(row.ClientPrice, row.Adjustments, taxPercent)
}

func withTax(subtotal money.Money, taxPercent money.Percent) Quote {
	tax := subtotal.MulPercent(taxPercent)
	return Quote{
		Subtotal:   subtotal,
		TaxPercent: taxPercent,
		Tax:        tax,
		Total:      subtotal.Add(tax),
	}
}
