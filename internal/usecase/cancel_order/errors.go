package cancel_order

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("cancel_order: order not found")

	// ErrCannotCancel возвращается, когда заказ уже завершён или отменён
	ErrCannotCancel = errors.New("cancel_order: order cannot be cancelled")

	// ErrNoPolicyConfigured возвращается, когда политика отмены не настроена.
	// Это не то же самое, что штраф 0%.
	ErrNoPolicyConfigured = errors.New("cancel_order: no cancellation policy configured")

	// ErrScheduleNotFound возвращается, когда у заказа нет записи в агенде
	ErrScheduleNotFound = errors.New("cancel_order: order has no scheduled appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_order: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_order: internal error")
)
