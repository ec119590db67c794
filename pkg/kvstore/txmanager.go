package kvstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"
)

type batchKey struct{}

func batchFromContext(ctx context.Context) *pebble.Batch {
	b, _ := ctx.Value(batchKey{}).(*pebble.Batch)
	return b
}

// TxManager транзакции для Pebble: записи копятся в indexed batch
// и фиксируются атомарно. Транзакции сериализуются общим мьютексом.
type TxManager struct {
	store *Store
	mu    sync.Mutex
}

// NewTxManager создаёт менеджер транзакций поверх хранилища
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	// Вложенный вызов работает в batch внешней транзакции
	if batchFromContext(ctx) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	b := m.store.db.NewIndexedBatch()
	defer b.Close()

	if err := fn(context.WithValue(ctx, batchKey{}, b)); err != nil {
		return err
	}

	if b.Empty() {
		return nil
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrStorage, err)
	}
	return nil
}
