package rate

import "errors"

var (
	// ErrRateNotFound возвращается, когда строка прайса не найдена
	ErrRateNotFound = errors.New("rate.repository: rate row not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("rate.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("rate.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("rate.repository: failed to scan row")

	// ErrStorage возвращается при ошибке локального хранилища
	ErrStorage = errors.New("rate.repository: storage error")
)
