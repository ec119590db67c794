package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/internal/rules/conflicts"
	"github.com/m04kA/SMC-TransferService/pkg/money"
)

// Request модели

// CreateOrderRequest запрос на создание заказа
type CreateOrderRequest struct {
	ClientID       string       `json:"clientId"`
	ServiceKind    string       `json:"serviceKind"`           // transfer | hourly
	HourPackage    *int         `json:"hourPackage,omitempty"` // только для hourly
	VehicleClass   string       `json:"vehicleClass"`
	Armored        bool         `json:"armored"`
	DriverClass    string       `json:"driverClass"`
	Outsourcing    string       `json:"outsourcing,omitempty"` // none по умолчанию
	SupplierID     *string      `json:"supplierId,omitempty"`
	PickupAddress  string       `json:"pickupAddress"`
	DropoffAddress string       `json:"dropoffAddress,omitempty"`
	PassengerName  string       `json:"passengerName,omitempty"`
	Notes          *string      `json:"notes,omitempty"`
	Start          time.Time    `json:"start"`
	End            *time.Time   `json:"end,omitempty"`          // для hourly по умолчанию start + пакет часов
	ManualAmount   *money.Money `json:"manualAmount,omitempty"` // ручная цена вместо прайса
}

// ToDomainOrder собирает заказ в статусе reserved без цены
func (r *CreateOrderRequest) ToDomainOrder() *domain.ServiceOrder {
	outsourcing := domain.OutsourcingMode(strings.TrimSpace(r.Outsourcing))
	if outsourcing == "" {
		outsourcing = domain.OutsourcingNone
	}

	hourPackage := r.HourPackage
	if domain.ServiceKind(r.ServiceKind) == domain.ServiceTransfer {
		hourPackage = nil
	}

	return &domain.ServiceOrder{
		ClientID:       strings.TrimSpace(r.ClientID),
		ServiceKind:    domain.ServiceKind(r.ServiceKind),
		HourPackage:    hourPackage,
		VehicleClass:   strings.TrimSpace(r.VehicleClass),
		Armored:        r.Armored,
		DriverClass:    strings.TrimSpace(r.DriverClass),
		Outsourcing:    outsourcing,
		SupplierID:     r.SupplierID,
		Status:         domain.OrderReserved,
		PickupAddress:  strings.TrimSpace(r.PickupAddress),
		DropoffAddress: strings.TrimSpace(r.DropoffAddress),
		PassengerName:  strings.TrimSpace(r.PassengerName),
		Notes:          r.Notes,
	}
}

// Schedule возвращает интервал заказа. Для hourly без end интервал равен пакету часов
func (r *CreateOrderRequest) Schedule() (start, end time.Time, err error) {
	if r.Start.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("start is required")
	}

	switch {
	case r.End != nil:
		end = *r.End
	case domain.ServiceKind(r.ServiceKind) == domain.ServiceHourly && r.HourPackage != nil:
		end = r.Start.Add(time.Duration(*r.HourPackage) * time.Hour)
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("end is required")
	}

	return r.Start, end, nil
}

// UpdateStatusRequest запрос на смену статуса заказа
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// ScheduleResponse интервал заказа в агенде
type ScheduleResponse struct {
	AppointmentID string    `json:"appointmentId"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
}

// OrderResponse ответ с данными заказа
type OrderResponse struct {
	*domain.ServiceOrder
	Schedule *ScheduleResponse `json:"schedule,omitempty"`
}

// CreateOrderResponse созданный заказ и рекомендательный результат проверки конфликтов.
// Conflicts равен nil, если проверку выполнить не удалось
type CreateOrderResponse struct {
	Order     OrderResponse      `json:"order"`
	Conflicts *conflicts.Verdict `json:"conflicts,omitempty"`
}

// Методы конвертации

// FromDomain конвертирует заказ и его запись агенды в DTO
func FromDomain(o *domain.ServiceOrder, a *domain.Appointment) *OrderResponse {
	if o == nil {
		return nil
	}

	resp := &OrderResponse{ServiceOrder: o}
	if a != nil {
		resp.Schedule = &ScheduleResponse{
			AppointmentID: a.ID,
			Start:         a.Start,
			End:           a.End,
		}
	}
	return resp
}

// ToDomainOrderStatus конвертирует строку в статус заказа
func ToDomainOrderStatus(s string) (domain.OrderStatus, error) {
	status := domain.OrderStatus(strings.TrimSpace(s))
	if !status.IsValid() {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return status, nil
}
