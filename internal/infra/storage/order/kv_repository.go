package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/pkg/kvstore"
)

// KVRepository репозиторий заказов в локальном хранилище Pebble
type KVRepository struct {
	store *kvstore.Store
	now   func() time.Time
}

// NewKVRepository создает репозиторий поверх локального хранилища
func NewKVRepository(store *kvstore.Store) *KVRepository {
	return &KVRepository{store: store, now: time.Now}
}

// Create сохраняет заказ. ID генерируется, если не задан
func (r *KVRepository) Create(ctx context.Context, o *domain.ServiceOrder) (*domain.ServiceOrder, error) {
	if o.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - generate id: %v", ErrStorage, err)
		}
		o.ID = id.String()
	}

	now := r.now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	if err := r.store.Put(ctx, kvstore.Key(KeyPrefix, o.ID), o); err != nil {
		return nil, fmt.Errorf("%w: Create - put: %v", ErrStorage, err)
	}
	return o, nil
}

// GetByID получает заказ по ID
func (r *KVRepository) GetByID(ctx context.Context, id string) (*domain.ServiceOrder, error) {
	var o domain.ServiceOrder
	err := r.store.Get(ctx, kvstore.Key(KeyPrefix, id), &o)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - get: %v", ErrStorage, err)
	}
	return &o, nil
}

// GetByIDs получает заказы по списку ID. Отсутствующие ID пропускаются
func (r *KVRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.ServiceOrder, error) {
	result := make(map[string]*domain.ServiceOrder, len(ids))
	for _, id := range ids {
		if _, ok := result[id]; ok {
			continue
		}
		o, err := r.GetByID(ctx, id)
		if errors.Is(err, ErrOrderNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		result[id] = o
	}
	return result, nil
}

// UpdateStatus обновляет статус заказа
func (r *KVRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	o, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if o.Status.IsTerminal() {
		return ErrStatusConflict
	}

	o.Status = status
	o.UpdatedAt = r.now().UTC()

	if err := r.store.Put(ctx, kvstore.Key(KeyPrefix, id), o); err != nil {
		return fmt.Errorf("%w: UpdateStatus - put: %v", ErrStorage, err)
	}
	return nil
}

// SaveCancellation переводит заказ в cancelled и сохраняет рассчитанный штраф
func (r *KVRepository) SaveCancellation(ctx context.Context, id string, c domain.Cancellation) error {
	o, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if o.Status.IsTerminal() {
		return ErrStatusConflict
	}

	o.Status = domain.OrderCancelled
	o.Cancellation = &c
	o.UpdatedAt = c.CancelledAt

	if err := r.store.Put(ctx, kvstore.Key(KeyPrefix, id), o); err != nil {
		return fmt.Errorf("%w: SaveCancellation - put: %v", ErrStorage, err)
	}
	return nil
}
