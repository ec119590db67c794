package quote_price

import "errors"

var (
	// ErrRateNotFound возвращается, когда в прайсе нет активной строки под запрос.
	// Вызывающий должен запросить ручную цену или отказаться от создания заказа.
	ErrRateNotFound = errors.New("quote_price: no active rate matches the request")

	// ErrUnknownVehicleClass возвращается, когда класса нет в каталоге или он выключен
	ErrUnknownVehicleClass = errors.New("quote_price: unknown vehicle class")

	// ErrSettingsNotConfigured возвращается, когда не заданы глобальные настройки (налог)
	ErrSettingsNotConfigured = errors.New("quote_price: settings are not configured")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_price: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_price: internal error")
)
