package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TransferService/pkg/money"
)

// OrderStatus статус заказа (OS)
type OrderStatus string

const (
	OrderReserved   OrderStatus = "reserved"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// IsValid true для известных статусов
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderReserved, OrderInProgress, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// IsTerminal true для completed и cancelled
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// CanTransitionTo проверяет переход:
// reserved -> in_progress -> completed, reserved|in_progress -> cancelled
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderReserved:
		return next == OrderInProgress || next == OrderCancelled
	case OrderInProgress:
		return next == OrderCompleted || next == OrderCancelled
	default:
		return false
	}
}

// OutsourcingMode режим терцеризации
type OutsourcingMode string

const (
	OutsourcingNone             OutsourcingMode = "none"
	OutsourcingDriverOnly       OutsourcingMode = "driver_only"
	OutsourcingDriverAndVehicle OutsourcingMode = "driver_and_vehicle"
)

// IsValid true для известных режимов
func (m OutsourcingMode) IsValid() bool {
	switch m {
	case OutsourcingNone, OutsourcingDriverOnly, OutsourcingDriverAndVehicle:
		return true
	}
	return false
}

// PriceSource откуда взята цена заказа
type PriceSource string

const (
	PriceFromTable PriceSource = "table"
	PriceManual    PriceSource = "manual"
)

// VehicleKey идентичность ресурса "автомобиль": класс + бронирование
type VehicleKey struct {
	Class   string
	Armored bool
}

// DriverKey идентичность ресурса "водитель": класс + терцеризация + поставщик
type DriverKey struct {
	Class       string
	Outsourcing OutsourcingMode
	SupplierID  string
}

// ServiceOrder заказ на услугу (OS)
type ServiceOrder struct {
	ID           string          `json:"id"`
	ClientID     string          `json:"clientId"`
	ServiceKind  ServiceKind     `json:"serviceKind"`
	HourPackage  *int            `json:"hourPackage,omitempty"`
	VehicleClass string          `json:"vehicleClass"`
	Armored      bool            `json:"armored"`
	DriverClass  string          `json:"driverClass"`
	Outsourcing  OutsourcingMode `json:"outsourcing"`
	SupplierID   *string         `json:"supplierId,omitempty"` // есть тогда и только тогда, когда есть терцеризация
	Status       OrderStatus     `json:"status"`

	PickupAddress  string  `json:"pickupAddress"`
	DropoffAddress string  `json:"dropoffAddress,omitempty"`
	PassengerName  string  `json:"passengerName,omitempty"`
	Notes          *string `json:"notes,omitempty"`

	// Цена фиксируется при создании заказа
	PriceSource  PriceSource   `json:"priceSource"`
	RateRowID    *string       `json:"rateRowId,omitempty"`
	Subtotal     money.Money   `json:"subtotal"`
	TaxPercent   money.Percent `json:"taxPercent"`
	TaxAmount    money.Money   `json:"taxAmount"`
	TotalPrice   money.Money   `json:"totalPrice"`
	SupplierCost money.Money   `json:"supplierCost"`

	Cancellation *Cancellation `json:"cancellation,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Cancellation данные отмены, сохраняемые в заказе
type Cancellation struct {
	FeePercent  money.Percent `json:"feePercent"`
	FeeAmount   money.Money   `json:"feeAmount"`
	WindowLabel string        `json:"windowLabel"`
	Reason      string        `json:"reason,omitempty"`
	CancelledAt time.Time     `json:"cancelledAt"`
}

// VehicleKey ключ ресурса "автомобиль"
func (o *ServiceOrder) VehicleKey() VehicleKey {
	return VehicleKey{Class: o.VehicleClass, Armored: o.Armored}
}

// DriverKey ключ ресурса "водитель"
func (o *ServiceOrder) DriverKey() DriverKey {
	supplier := ""
	if o.SupplierID != nil {
		supplier = *o.SupplierID
	}
	return DriverKey{Class: o.DriverClass, Outsourcing: o.Outsourcing, SupplierID: supplier}
}

// IsActive заказ участвует в проверке конфликтов, пока не отменён
func (o *ServiceOrder) IsActive() bool {
	return o.Status != OrderCancelled
}

// CanBeCancelled отменить можно только reserved и in_progress
func (o *ServiceOrder) CanBeCancelled() bool {
	return o.Status.CanTransitionTo(OrderCancelled)
}

// RateRequest характеристики заказа для поиска в прайсе
func (o *ServiceOrder) RateRequest() RateRequest {
	return RateRequest{
		ServiceKind:  o.ServiceKind,
		HourPackage:  o.HourPackage,
		VehicleClass: o.VehicleClass,
		Armored:      o.Armored,
		DriverClass:  o.DriverClass,
	}
}

// Validate проверяет комбинацию полей заказа
func (o *ServiceOrder) Validate() error {
	if strings.TrimSpace(o.ClientID) == "" {
		return fmt.Errorf("%w: client is required", ErrInvalidOrder)
	}
	if err := o.RateRequest().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}
	if !o.Outsourcing.IsValid() {
		return fmt.Errorf("%w: unknown outsourcing mode %q", ErrInvalidOrder, o.Outsourcing)
	}

	hasSupplier := o.SupplierID != nil && strings.TrimSpace(*o.SupplierID) != ""
	if o.Outsourcing == OutsourcingNone && hasSupplier {
		return fmt.Errorf("%w: supplier must be empty when not outsourced", ErrInvalidOrder)
	}
	if o.Outsourcing != OutsourcingNone && !hasSupplier {
		return fmt.Errorf("%w: supplier is required when outsourced", ErrInvalidOrder)
	}

	if !o.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidOrder, o.Status)
	}
	return nil
}
