package domain

import (
	"fmt"
	"time"
)

// AppointmentKind тип записи в агенде
type AppointmentKind string

const (
	AppointmentService AppointmentKind = "service"
	AppointmentBlock   AppointmentKind = "block"
)

// IsValid true для известных типов
func (k AppointmentKind) IsValid() bool {
	return k == AppointmentService || k == AppointmentBlock
}

// Interval полуоткрытый интервал [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps пересечение полуоткрытых интервалов: стык в одну точку пересечением не считается
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Appointment зарезервированный интервал времени, привязанный к заказу
// (или ручная блокировка без заказа)
type Appointment struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"orderId,omitempty"`
	Start     time.Time       `json:"start"`
	End       time.Time       `json:"end"`
	Kind      AppointmentKind `json:"kind"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewAppointment создаёт запись агенды, отклоняя интервал с End <= Start
func NewAppointment(orderID string, start, end time.Time, kind AppointmentKind) (Appointment, error) {
	a := Appointment{
		OrderID: orderID,
		Start:   start,
		End:     end,
		Kind:    kind,
	}
	if err := a.Validate(); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// Validate проверяет инварианты записи
func (a Appointment) Validate() error {
	if !a.End.After(a.Start) {
		return fmt.Errorf("%w: start=%s end=%s", ErrInvalidInterval,
			a.Start.Format(time.RFC3339), a.End.Format(time.RFC3339))
	}
	if !a.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidAppointment, a.Kind)
	}
	if a.Kind == AppointmentService && a.OrderID == "" {
		return fmt.Errorf("%w: service appointment requires an order", ErrInvalidAppointment)
	}
	return nil
}

// Interval интервал записи
func (a Appointment) Interval() Interval {
	return Interval{Start: a.Start, End: a.End}
}

// ScheduledOrder запись агенды вместе с заказом, к которому она относится.
// Order равен nil для ручной блокировки без заказа.
type ScheduledOrder struct {
	Appointment Appointment
	Order       *ServiceOrder
}
