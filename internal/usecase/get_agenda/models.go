package get_agenda

import (
	"time"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/internal/rules/conflicts"
)

// MaxRange максимальная длина запрашиваемого периода
const MaxRange = 31 * 24 * time.Hour

// Request запрос агенды за период [From, To)
type Request struct {
	From time.Time
	To   time.Time
}

// Item запись агенды с результатом проверки
type Item struct {
	Appointment domain.Appointment   `json:"appointment"`
	Order       *domain.ServiceOrder `json:"order,omitempty"` // nil для блокировки без заказа
	Verdict     conflicts.Verdict    `json:"verdict"`
}

// Response агенда за период, записи упорядочены по началу
type Response struct {
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
	Items         []Item    `json:"items"`
	ConflictCount int       `json:"conflictCount"` // количество записей с конфликтом
}
