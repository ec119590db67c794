package check_conflicts

import (
	"time"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/internal/rules/conflicts"
)

// Request предлагаемая запись агенды и ресурсы, которые она займёт
type Request struct {
	AppointmentID string // ID существующей записи, которую не нужно сравнивать с собой (опционально)
	OrderID       string // ID заказа, если он уже создан (опционально)
	Start         time.Time
	End           time.Time
	VehicleClass  string
	Armored       bool
	DriverClass   string
	Outsourcing   domain.OutsourcingMode
	SupplierID    *string
}

// candidate собирает кандидата для детектора
func (r *Request) candidate() domain.ScheduledOrder {
	return domain.ScheduledOrder{
		Appointment: domain.Appointment{
			ID:      r.AppointmentID,
			OrderID: r.OrderID,
			Start:   r.Start,
			End:     r.End,
			Kind:    domain.AppointmentService,
		},
		Order: &domain.ServiceOrder{
			ID:           r.OrderID,
			VehicleClass: r.VehicleClass,
			Armored:      r.Armored,
			DriverClass:  r.DriverClass,
			Outsourcing:  r.Outsourcing,
			SupplierID:   r.SupplierID,
			Status:       domain.OrderReserved,
		},
	}
}

// Response рекомендательный результат проверки: двойное бронирование не запрещается
type Response = conflicts.Verdict
