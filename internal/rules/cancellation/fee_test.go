package cancellation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/pkg/money"
)

var start = time.Date(2026, 5, 20, 14, 0, 0, 0, time.UTC)

func TestComputeFee_DefaultPolicy(t *testing.T) {
	total := money.MustParse("132")

	tests := []struct {
		name      string
		lead      time.Duration
		wantPct   money.Percent
		wantFee   string
		wantLabel string
	}{
		{name: "72h", lead: 72 * time.Hour, wantPct: 0, wantFee: "0.00", wantLabel: "48h or more"},
		{name: "exactly 48h", lead: 48 * time.Hour, wantPct: 0, wantFee: "0.00", wantLabel: "48h or more"},
		{name: "just under 48h", lead: 48*time.Hour - time.Second, wantPct: money.PercentFromInt(20), wantFee: "26.40", wantLabel: "24h to 48h"},
		{name: "30h", lead: 30 * time.Hour, wantPct: money.PercentFromInt(20), wantFee: "26.40", wantLabel: "24h to 48h"},
		{name: "10h", lead: 10 * time.Hour, wantPct: money.PercentFromInt(50), wantFee: "66.00", wantLabel: "less than 24h"},
		{name: "2h", lead: 2 * time.Hour, wantPct: money.PercentFromInt(50), wantFee: "66.00", wantLabel: "less than 24h"},
		{name: "zero lead", lead: 0, wantPct: money.PercentFromInt(50), wantFee: "66.00", wantLabel: "less than 24h"},
		{name: "after start", lead: -5 * time.Hour, wantPct: money.PercentFromInt(50), wantFee: "66.00", wantLabel: "less than 24h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := ComputeFee(domain.DefaultCancellationPolicy(), start, start.Add(-tt.lead), total)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPct, fee.FeePercent)
			assert.Equal(t, tt.wantFee, fee.FeeAmount.String())
			assert.Equal(t, tt.wantLabel, fee.WindowLabel)
			assert.Equal(t, tt.lead, fee.LeadTime)
		})
	}
}

func TestComputeFee_UnsortedPolicy(t *testing.T) {
	policy := []domain.CancellationWindow{
		{ThresholdHours: 0, FeePercent: money.PercentFromInt(50), Label: "late"},
		{ThresholdHours: 48, FeePercent: 0, Label: "early"},
		{ThresholdHours: 24, FeePercent: money.PercentFromInt(20), Label: "mid"},
	}

	fee, err := ComputeFee(policy, start, start.Add(-30*time.Hour), money.FromUnits(100))
	require.NoError(t, err)
	assert.Equal(t, "mid", fee.WindowLabel)

	// входной срез не переупорядочивается
	assert.Equal(t, "late", policy[0].Label)
}

func TestComputeFee_FallbackToSmallestThreshold(t *testing.T) {
	policy := []domain.CancellationWindow{
		{ThresholdHours: 72, FeePercent: 0, Label: "early"},
		{ThresholdHours: 12, FeePercent: money.PercentFromInt(100), Label: "late"},
	}

	fee, err := ComputeFee(policy, start, start.Add(-2*time.Hour), money.MustParse("99.99"))
	require.NoError(t, err)
	assert.Equal(t, "late", fee.WindowLabel)
	assert.Equal(t, money.MustParse("99.99"), fee.FeeAmount)
}

func TestComputeFee_RoundsToCent(t *testing.T) {
	policy := []domain.CancellationWindow{{ThresholdHours: 0, FeePercent: money.MustParsePercent("12.5"), Label: "any"}}

	fee, err := ComputeFee(policy, start, start, money.MustParse("0.20"))
	require.NoError(t, err)
	assert.Equal(t, money.FromCents(3), fee.FeeAmount)
}

func TestComputeFee_EmptyPolicy(t *testing.T) {
	_, err := ComputeFee(nil, start, start, money.FromUnits(100))
	assert.ErrorIs(t, err, ErrNoPolicy)

	_, err = ComputeFee([]domain.CancellationWindow{}, start, start, money.FromUnits(100))
	assert.ErrorIs(t, err, ErrNoPolicy)
}
