package vehicle

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/pkg/kvstore"
)

// KVRepository репозиторий каталога автомобилей в локальном хранилище Pebble
type KVRepository struct {
	store *kvstore.Store
}

// NewKVRepository создает репозиторий поверх локального хранилища
func NewKVRepository(store *kvstore.Store) *KVRepository {
	return &KVRepository{store: store}
}

// List возвращает каталог в порядке ключей, то есть по классу
func (r *KVRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	result := make([]domain.Vehicle, 0)
	err := kvstore.ScanInto(ctx, r.store, KeyPrefix, func(v domain.Vehicle) error {
		result = append(result, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: List - scan: %v", ErrStorage, err)
	}
	return result, nil
}

// GetByClass получает запись каталога по классу
func (r *KVRepository) GetByClass(ctx context.Context, class string) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := r.store.Get(ctx, kvstore.Key(KeyPrefix, class), &v)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClass - get: %v", ErrStorage, err)
	}
	return &v, nil
}

// Upsert создаёт или обновляет запись каталога
func (r *KVRepository) Upsert(ctx context.Context, v domain.Vehicle) error {
	if err := r.store.Put(ctx, kvstore.Key(KeyPrefix, v.Class), v); err != nil {
		return fmt.Errorf("%w: Upsert - put: %v", ErrStorage, err)
	}
	return nil
}
