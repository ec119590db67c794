package order

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

func newKVRepository(t *testing.T) (*KVRepository, *kvstore.Store) {
	t.Helper()
	store, err := kvstore.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewKVRepository(store), store
}

func sampleOrder() *domain.ServiceOrder {
	return &domain.ServiceOrder{
		ClientID:     "client-1",
		ServiceKind:  domain.ServiceTransfer,
		VehicleClass: "sedan",
		DriverClass:  "mono",
		Outsourcing:  domain.OutsourcingDriverOnly,
		SupplierID:   ptr.Ptr("sup-1"),
		Status:       domain.OrderReserved,
		PriceSource:  domain.PriceFromTable,
		Subtotal:     money.FromUnits(120),
		TaxPercent:   money.PercentFromInt(10),
		TaxAmount:    money.FromUnits(12),
		TotalPrice:   money.FromUnits(132),
	}
}

func TestKVRepository_CreateGetUpdate(t *testing.T) {
	repo, _ := newKVRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleOrder())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, money.FromUnits(132), got.TotalPrice)
	assert.Equal(t, "sup-1", *got.SupplierID)

	require.NoError(t, repo.UpdateStatus(ctx, created.ID, domain.OrderInProgress))
	got, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderInProgress, got.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", domain.OrderCompleted), ErrOrderNotFound)
}

func TestKVRepository_SaveCancellation(t *testing.T) {
	repo, _ := newKVRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleOrder())
	require.NoError(t, err)

	at := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	c := domain.Cancellation{
		FeePercent:  money.PercentFromInt(50),
		FeeAmount:   money.FromUnits(66),
		WindowLabel: "less than 24h",
		Reason:      "flight cancelled",
		CancelledAt: at,
	}
	require.NoError(t, repo.SaveCancellation(ctx, created.ID, c))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, got.Status)
	require.NotNil(t, got.Cancellation)
	assert.Equal(t, money.FromUnits(66), got.Cancellation.FeeAmount)
	assert.True(t, at.Equal(got.Cancellation.CancelledAt))

	assert.ErrorIs(t, repo.SaveCancellation(ctx, "missing", c), ErrOrderNotFound)
}

func TestKVRepository_TerminalStatusIsNotOverwritten(t *testing.T) {
	repo, _ := newKVRepository(t)
	ctx := context.Background()

	c := domain.Cancellation{
		FeePercent:  money.PercentFromInt(100),
		FeeAmount:   money.FromUnits(132),
		WindowLabel: "less than 24h",
		CancelledAt: time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
	}

	completed, err := repo.Create(ctx, sampleOrder())
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, completed.ID, domain.OrderCompleted))

	assert.ErrorIs(t, repo.SaveCancellation(ctx, completed.ID, c), ErrStatusConflict)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, completed.ID, domain.OrderCancelled), ErrStatusConflict)

	got, err := repo.GetByID(ctx, completed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCompleted, got.Status)
	assert.Nil(t, got.Cancellation)

	cancelled, err := repo.Create(ctx, sampleOrder())
	require.NoError(t, err)
	require.NoError(t, repo.SaveCancellation(ctx, cancelled.ID, c))

	assert.ErrorIs(t, repo.UpdateStatus(ctx, cancelled.ID, domain.OrderCompleted), ErrStatusConflict)
	assert.ErrorIs(t, repo.SaveCancellation(ctx, cancelled.ID, c), ErrStatusConflict)
}

func TestKVRepository_GetByIDsSkipsMissing(t *testing.T) {
	repo, _ := newKVRepository(t)
	ctx := context.Background()

	a, err := repo.Create(ctx, sampleOrder())
	require.NoError(t, err)

	got, err := repo.GetByIDs(ctx, []string{a.ID, "missing", a.ID})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Contains(t, got, a.ID)
}

func TestKVRepository_TxRollbackDiscardsOrder(t *testing.T) {
	repo, store := newKVRepository(t)
	tx := kvstore.NewTxManager(store)

	var id string
	err := tx.Do(context.Background(), func(ctx context.Context) error {
		o, err := repo.Create(ctx, sampleOrder())
		if err != nil {
			return err
		}
		id = o.ID
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
