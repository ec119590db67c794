package domain

// Форматы дат для API и логов
const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04"
)

// Ограничения бизнес-валидации
const (
	MaxHourPackage              = 24
	MaxCancellationReasonLength = 500
	MaxNotesLength              = 500
)

// Значения по умолчанию
const (
	DefaultAgendaLookaroundHours = 24
)
