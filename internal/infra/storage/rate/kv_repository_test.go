package rate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/pkg/kvstore"
	"github.com/m04kA/SMC-TransferService/pkg/money"
	"github.com/m04kA/SMC-TransferService/pkg/ptr"
)

func newKVRepository(t *testing.T) *KVRepository {
	t.Helper()
	store, err := kvstore.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	repo := NewKVRepository(store)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return repo
}

func TestKVRepository_CreateAndGet(t *testing.T) {
	repo := newKVRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.RateRow{
		ServiceKind:  domain.ServiceHourly,
		HourPackage:  ptr.Ptr(4),
		VehicleClass: "sedan",
		DriverClass:  "mono",
		ClientPrice:  money.FromUnits(400),
		Adjustments:  []domain.Adjustment{domain.NewPercentageAdjustment(money.PercentFromInt(10))},
		Active:       true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, *got.HourPackage)
	assert.Equal(t, money.FromUnits(400), got.ClientPrice)
	assert.Equal(t, created.Adjustments, got.Adjustments)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrRateNotFound)
}

func TestKVRepository_ListActiveKeepsCreationOrder(t *testing.T) {
	repo := newKVRepository(t)
	ctx := context.Background()

	ids := make([]string, 0, 3)
	for _, active := range []bool{true, false, true} {
		row, err := repo.Create(ctx, &domain.RateRow{
			ServiceKind:  domain.ServiceTransfer,
			VehicleClass: "sedan",
			DriverClass:  "mono",
			Active:       active,
		})
		require.NoError(t, err)
		ids = append(ids, row.ID)
	}

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, ids[0], active[0].ID)
	assert.Equal(t, ids[2], active[1].ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestKVRepository_SetActive(t *testing.T) {
	repo := newKVRepository(t)
	ctx := context.Background()

	row, err := repo.Create(ctx, &domain.RateRow{
		ServiceKind: domain.ServiceTransfer, VehicleClass: "suv", DriverClass: "mono", Active: true,
	})
	require.NoError(t, err)

	require.NoError(t, repo.SetActive(ctx, row.ID, false))
	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	assert.ErrorIs(t, repo.SetActive(ctx, "missing", true), ErrRateNotFound)
}

func TestKVRepository_EmptyTable(t *testing.T) {
	repo := newKVRepository(t)

	rows, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
