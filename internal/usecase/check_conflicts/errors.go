package check_conflicts

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_conflicts: invalid input data")

	// ErrMalformedAppointment возвращается, когда в хранилище есть запись с End <= Start
	ErrMalformedAppointment = errors.New("check_conflicts: malformed appointment in storage")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_conflicts: internal error")
)
