package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись агенды не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")

	// ErrStorage возвращается при ошибке локального хранилища
	ErrStorage = errors.New("appointment.repository: storage error")

	// ErrLoadOrders возвращается, когда не удалось загрузить заказы записей
	ErrLoadOrders = errors.New("appointment.repository: failed to load orders")
)
