package rate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/pkg/kvstore"
)

// KVRepository репозиторий строк прайса в локальном хранилище Pebble
type KVRepository struct {
	store *kvstore.Store
	now   func() time.Time
}

// NewKVRepository создает репозиторий поверх локального хранилища
func NewKVRepository(store *kvstore.Store) *KVRepository {
	return &KVRepository{store: store, now: time.Now}
}

// Create сохраняет строку прайса. ID генерируется, если не задан
func (r *KVRepository) Create(ctx context.Context, row *domain.RateRow) (*domain.RateRow, error) {
	if row.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - generate id: %v", ErrStorage, err)
		}
		row.ID = id.String()
	}

	now := r.now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now
	row.Adjustments = nonNilAdjustments(row.Adjustments)

	if err := r.store.Put(ctx, kvstore.Key(KeyPrefix, row.ID), row); err != nil {
		return nil, fmt.Errorf("%w: Create - put: %v", ErrStorage, err)
	}
	return row, nil
}

// GetByID получает строку прайса по ID
func (r *KVRepository) GetByID(ctx context.Context, id string) (*domain.RateRow, error) {
	var row domain.RateRow
	err := r.store.Get(ctx, kvstore.Key(KeyPrefix, id), &row)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, ErrRateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - get: %v", ErrStorage, err)
	}
	return &row, nil
}

// ListActive возвращает активные строки в порядке создания
func (r *KVRepository) ListActive(ctx context.Context) ([]domain.RateRow, error) {
	return r.list(ctx, true, "ListActive")
}

// List возвращает все строки прайса
func (r *KVRepository) List(ctx context.Context) ([]domain.RateRow, error) {
	return r.list(ctx, false, "List")
}

func (r *KVRepository) list(ctx context.Context, activeOnly bool, op string) ([]domain.RateRow, error) {
	result := make([]domain.RateRow, 0)
	err := kvstore.ScanInto(ctx, r.store, KeyPrefix, func(row domain.RateRow) error {
		if activeOnly && !row.Active {
			return nil
		}
		result = append(result, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan: %v", ErrStorage, op, err)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// SetActive включает или выключает строку прайса
func (r *KVRepository) SetActive(ctx context.Context, id string, active bool) error {
	row, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	row.Active = active
	row.UpdatedAt = r.now().UTC()

	if err := r.store.Put(ctx, kvstore.Key(KeyPrefix, id), row); err != nil {
		return fmt.Errorf("%w: SetActive - put: %v", ErrStorage, err)
	}
	return nil
}
