package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TransferService/pkg/money"
)

// CancellationWindow ступень политики отмены:
// если до начала услуги осталось не меньше ThresholdHours, применяется FeePercent
type CancellationWindow struct {
	ThresholdHours int           `json:"thresholdHours"`
	FeePercent     money.Percent `json:"feePercent"`
	Label          string        `json:"label"`
}

// NewCancellationWindow создаёт окно политики отмены
func NewCancellationWindow(thresholdHours int, feePercent money.Percent, label string) (CancellationWindow, error) {
	w := CancellationWindow{
		ThresholdHours: thresholdHours,
		FeePercent:     feePercent,
		Label:          strings.TrimSpace(label),
	}
	if err := w.Validate(); err != nil {
		return CancellationWindow{}, err
	}
	return w, nil
}

// Validate проверяет окно
func (w CancellationWindow) Validate() error {
	if w.ThresholdHours < 0 {
		return fmt.Errorf("%w: threshold must not be negative, got %d", ErrInvalidWindow, w.ThresholdHours)
	}
	if w.FeePercent < 0 || w.FeePercent > money.PercentFromInt(100) {
		return fmt.Errorf("%w: fee percent must be within 0..100, got %s", ErrInvalidWindow, w.FeePercent)
	}
	if w.Label == "" {
		return fmt.Errorf("%w: label is required", ErrInvalidWindow)
	}
	return nil
}

// Threshold порог окна как длительность
func (w CancellationWindow) Threshold() time.Duration {
	return time.Duration(w.ThresholdHours) * time.Hour
}

// ValidatePolicy проверяет политику целиком: непустая, окна валидны, пороги не повторяются
func ValidatePolicy(windows []CancellationWindow) error {
	if len(windows) == 0 {
		return fmt.Errorf("%w: policy must contain at least one window", ErrInvalidPolicy)
	}

	seen := make(map[int]struct{}, len(windows))
	for i, w := range windows {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("%w: window #%d: %v", ErrInvalidPolicy, i, err)
		}
		if _, dup := seen[w.ThresholdHours]; dup {
			return fmt.Errorf("%w: duplicate threshold %dh", ErrInvalidPolicy, w.ThresholdHours)
		}
		seen[w.ThresholdHours] = struct{}{}
	}
	return nil
}

// DefaultCancellationPolicy политика, создаваемая при первом запуске
func DefaultCancellationPolicy() []CancellationWindow {
	return []CancellationWindow{
		{ThresholdHours: 48, FeePercent: money.PercentFromInt(0), Label: "48h or more"},
		{ThresholdHours: 24, FeePercent: money.PercentFromInt(20), Label: "24h to 48h"},
		{ThresholdHours: 0, FeePercent: money.PercentFromInt(50), Label: "less than 24h"},
	}
}
