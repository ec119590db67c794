package order

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("order.repository: order not found")

	// ErrStatusConflict возвращается, когда заказ уже в конечном статусе (completed или cancelled)
	ErrStatusConflict = errors.New("order.repository: order is already in a terminal status")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("order.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("order.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("order.repository: failed to scan row")

	// ErrStorage возвращается при ошибке локального хранилища
	ErrStorage = errors.New("order.repository: storage error")
)
