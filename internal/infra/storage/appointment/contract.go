package appointment

import (
	"context"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// KeyPrefix префикс ключей записей агенды в локальном хранилище
const KeyPrefix = "appointment"

// OrderReader источник заказов для связывания с записями агенды
type OrderReader interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.ServiceOrder, error)
}
