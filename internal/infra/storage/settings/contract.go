package settings

import (
	"github.com/m04kA/SMC-TransferService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Key ключ единственной записи настроек в локальном хранилище
const Key = "settings/global"

// settingsRowID настройки хранятся одной строкой
const settingsRowID = 1
