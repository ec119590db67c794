package get_agenda

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном периоде
	ErrInvalidInput = errors.New("get_agenda: invalid input data")

	// ErrMalformedAppointment возвращается, когда в хранилище есть запись с End <= Start
	ErrMalformedAppointment = errors.New("get_agenda: malformed appointment in storage")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_agenda: internal error")
)
