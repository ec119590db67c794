package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/pkg/kvstore"
)

// KVRepository репозиторий настроек в локальном хранилище Pebble
type KVRepository struct {
	store *kvstore.Store
}

// NewKVRepository создает репозиторий поверх локального хранилища
func NewKVRepository(store *kvstore.Store) *KVRepository {
	return &KVRepository{store: store}
}

// Get получает настройки
func (r *KVRepository) Get(ctx context.Context) (*domain.Settings, error) {
	var s domain.Settings
	err := r.store.Get(ctx, Key, &s)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - get: %v", ErrStorage, err)
	}
	return &s, nil
}

// Save создаёт или заменяет настройки целиком
func (r *KVRepository) Save(ctx context.Context, s *domain.Settings) error {
	if err := r.store.Put(ctx, Key, s); err != nil {
		return fmt.Errorf("%w: Save - put: %v", ErrStorage, err)
	}
	return nil
}
