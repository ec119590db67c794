package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TransferService/pkg/money"
)

// Settings глобальные настройки: системный налог и политика отмены
type Settings struct {
	SystemTaxPercent   money.Percent        `json:"systemTaxPercent"`
	CancellationPolicy []CancellationWindow `json:"cancellationPolicy"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

// Validate проверяет настройки перед сохранением администратором
func (s Settings) Validate() error {
	if s.SystemTaxPercent < 0 || s.SystemTaxPercent > money.PercentFromInt(100) {
		return fmt.Errorf("%w: tax percent must be within 0..100, got %s", ErrInvalidPolicy, s.SystemTaxPercent)
	}
	return ValidatePolicy(s.CancellationPolicy)
}
