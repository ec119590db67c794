package orders

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("orders: order not found")

	// ErrRateNotFound возвращается, когда нет строки прайса и не передана ручная цена
	ErrRateNotFound = errors.New("orders: no active rate, provide manual price")

	// ErrUnknownVehicleClass возвращается, когда класса автомобиля нет в каталоге
	ErrUnknownVehicleClass = errors.New("orders: unknown vehicle class")

	// ErrSettingsNotConfigured возвращается, когда не заданы глобальные настройки
	ErrSettingsNotConfigured = errors.New("orders: settings are not configured")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("orders: invalid status transition")

	// ErrUseCancel возвращается при попытке выставить cancelled через смену статуса
	ErrUseCancel = errors.New("orders: use the cancel operation to cancel an order")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("orders: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("orders: internal error")
)
