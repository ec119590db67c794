package ratetable

import "errors"

var (
	// ErrRateNotFound возвращается, когда строка прайса не найдена
	ErrRateNotFound = errors.New("ratetable: rate row not found")

	// ErrUnknownVehicleClass возвращается, когда класса автомобиля нет в каталоге
	ErrUnknownVehicleClass = errors.New("ratetable: unknown vehicle class")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("ratetable: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("ratetable: internal error")
)
