package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/pkg/kvstore"
)

// KVRepository репозиторий записей агенды в локальном хранилище Pebble
type KVRepository struct {
	store  *kvstore.Store
	orders OrderReader
	now    func() time.Time
}

// NewKVRepository создает репозиторий поверх локального хранилища
func NewKVRepository(store *kvstore.Store, orders OrderReader) *KVRepository {
	return &KVRepository{store: store, orders: orders, now: time.Now}
}

// Create сохраняет запись агенды
func (r *KVRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if a.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - generate id: %v", ErrStorage, err)
		}
		a.ID = id.String()
	}
	a.CreatedAt = r.now().UTC()

	if err := r.store.Put(ctx, kvstore.Key(KeyPrefix, a.ID), a); err != nil {
		return nil, fmt.Errorf("%w: Create - put: %v", ErrStorage, err)
	}
	return a, nil
}

// GetByOrderID получает самую раннюю запись агенды заказа
func (r *KVRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Appointment, error) {
	var found *domain.Appointment
	err := kvstore.ScanInto(ctx, r.store, KeyPrefix, func(a domain.Appointment) error {
		if a.OrderID != orderID {
			return nil
		}
		if found == nil || a.Start.Before(found.Start) {
			item := a
			found = &item
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrderID - scan: %v", ErrStorage, err)
	}
	if found == nil {
		return nil, ErrAppointmentNotFound
	}
	return found, nil
}

// ListWithOrders возвращает записи, пересекающие окно [from, to), вместе с их заказами
func (r *KVRepository) ListWithOrders(ctx context.Context, from, to time.Time) ([]domain.ScheduledOrder, error) {
	appts := make([]domain.Appointment, 0)
	err := kvstore.ScanInto(ctx, r.store, KeyPrefix, func(a domain.Appointment) error {
		if a.Start.Before(to) && a.End.After(from) {
			appts = append(appts, a)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithOrders - scan: %v", ErrStorage, err)
	}

	sortByStart(appts)
	return attachOrders(ctx, r.orders, appts)
}
