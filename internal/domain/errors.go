package domain

import "errors"

var (
	// ErrInvalidRateRow строка прайса с недопустимой комбинацией полей
	ErrInvalidRateRow = errors.New("domain: invalid rate row")

	// ErrInvalidRateRequest запрос тарифа с недопустимой комбинацией полей
	ErrInvalidRateRequest = errors.New("domain: invalid rate request")

	// ErrInvalidAdjustment некорректная надбавка
	ErrInvalidAdjustment = errors.New("domain: invalid adjustment")

	// ErrInvalidWindow некорректное окно политики отмены
	ErrInvalidWindow = errors.New("domain: invalid cancellation window")

	// ErrInvalidPolicy некорректная политика отмены в целом
	ErrInvalidPolicy = errors.New("domain: invalid cancellation policy")

	// ErrInvalidInterval интервал, у которого конец не позже начала
	ErrInvalidInterval = errors.New("domain: appointment end must be after start")

	// ErrInvalidAppointment некорректная запись агенды
	ErrInvalidAppointment = errors.New("domain: invalid appointment")

	// ErrInvalidOrder некорректная комбинация полей заказа
	ErrInvalidOrder = errors.New("domain: invalid service order")

	// ErrInvalidTransition недопустимый переход статуса заказа
	ErrInvalidTransition = errors.New("domain: invalid order status transition")

	// ErrInvalidVehicle некорректная запись каталога автомобилей
	ErrInvalidVehicle = errors.New("domain: invalid vehicle")
)
