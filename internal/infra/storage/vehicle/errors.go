package vehicle

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда класс автомобиля не найден в каталоге
	ErrVehicleNotFound = errors.New("vehicle.repository: vehicle class not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("vehicle.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("vehicle.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("vehicle.repository: failed to scan row")

	// ErrStorage возвращается при ошибке локального хранилища
	ErrStorage = errors.New("vehicle.repository: storage error")
)
