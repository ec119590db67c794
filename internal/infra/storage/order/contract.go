package order

import (
	"github.com/m04kA/SMC-TransferService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// KeyPrefix префикс ключей заказов в локальном хранилище
const KeyPrefix = "order"
