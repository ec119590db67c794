// Package kvstore локальное хранилище записей поверх Pebble.
// Каждая сущность живёт под своим префиксом ключа ("order/<id>"), значения - JSON.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"
)

var (
	// ErrNotFound ключ отсутствует
	ErrNotFound = errors.New("kvstore: not found")

	// ErrEncode ошибка сериализации значения
	ErrEncode = errors.New("kvstore: encode error")

	// ErrDecode ошибка десериализации значения
	ErrDecode = errors.New("kvstore: decode error")

	// ErrStorage ошибка Pebble
	ErrStorage = errors.New("kvstore: storage error")
)

// Store хранилище записей
type Store struct {
	db *pebble.DB
}

// Open открывает (или создаёт) базу в каталоге dir
func Open(dir string) (*Store, error) {
	opts := &pebble.Options{
		MemTableSize:          16 << 20,
		L0CompactionThreshold: 4,
		L0StopWritesThreshold: 12,
	}
	db, err := pebble.Open(filepath.Clean(dir), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorage, dir, err)
	}
	return &Store{db: db}, nil
}

// Close закрывает базу
func (s *Store) Close() error {
	return s.db.Close()
}

// Key собирает ключ записи из префикса сущности и идентификатора
func Key(prefix, id string) string {
	return prefix + "/" + id
}

// Put сохраняет значение под ключом. Внутри транзакции запись попадает в batch
func (s *Store) Put(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncode, key, err)
	}

	if b := batchFromContext(ctx); b != nil {
		if err := b.Set([]byte(key), data, nil); err != nil {
			return fmt.Errorf("%w: batch set %s: %v", ErrStorage, key, err)
		}
		return nil
	}

	if err := s.db.Set([]byte(key), data, pebble.Sync); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrStorage, key, err)
	}
	return nil
}

// Get читает значение в dst. Если ключа нет - ErrNotFound
func (s *Store) Get(ctx context.Context, key string, dst interface{}) error {
	val, closer, err := s.reader(ctx).Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: get %s: %v", ErrStorage, key, err)
	}
	defer closer.Close()

	if err := json.Unmarshal(val, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, key, err)
	}
	return nil
}

// Delete удаляет ключ; отсутствие ключа ошибкой не считается
func (s *Store) Delete(ctx context.Context, key string) error {
	if b := batchFromContext(ctx); b != nil {
		if err := b.Delete([]byte(key), nil); err != nil {
			return fmt.Errorf("%w: batch delete %s: %v", ErrStorage, key, err)
		}
		return nil
	}

	if err := s.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrStorage, key, err)
	}
	return nil
}

// Scan обходит все записи с префиксом сущности в порядке ключей.
// fn получает сырое JSON значение; копия безопасна для хранения.
func (s *Store) Scan(ctx context.Context, prefix string, fn func(key string, value []byte) error) error {
	lower := []byte(prefix + "/")
	it, err := s.reader(ctx).NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: prefixUpperBound(lower),
	})
	if err != nil {
		return fmt.Errorf("%w: iter %s: %v", ErrStorage, prefix, err)
	}
	defer it.Close()

	for it.First(); it.Valid(); it.Next() {
		k := string(it.Key())
		v := append([]byte(nil), it.Value()...)
		if err := fn(k, v); err != nil {
			return err
		}
	}

	if err := it.Error(); err != nil {
		return fmt.Errorf("%w: iter %s: %v", ErrStorage, prefix, err)
	}
	return nil
}

// ScanInto обходит записи с префиксом, декодируя каждую в T
func ScanInto[T any](ctx context.Context, s *Store, prefix string, fn func(item T) error) error {
	return s.Scan(ctx, prefix, func(key string, value []byte) error {
		var item T
		if err := json.Unmarshal(value, &item); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrDecode, key, err)
		}
		return fn(item)
	})
}

func (s *Store) reader(ctx context.Context) pebble.Reader {
	if b := batchFromContext(ctx); b != nil {
		return b
	}
	return s.db
}

func prefixUpperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
