package rate

import (
	"github.com/m04kA/SMC-TransferService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// KeyPrefix префикс ключей строк прайса в локальном хранилище
const KeyPrefix = "rate"
