package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TransferService/pkg/money"
)

// ServiceKind тип услуги
type ServiceKind string

const (
	ServiceTransfer ServiceKind = "transfer"
	ServiceHourly   ServiceKind = "hourly"
)

// IsValid true для известных типов услуги
func (k ServiceKind) IsValid() bool {
	return k == ServiceTransfer || k == ServiceHourly
}

// AdjustmentKind тип надбавки к базовой цене
type AdjustmentKind string

const (
	AdjustmentPercentage AdjustmentKind = "percentage"
	AdjustmentFixed      AdjustmentKind = "fixed"
)

// Adjustment надбавка (или скидка при отрицательном значении).
// Для percentage заполнен Percent, для fixed - Amount.
type Adjustment struct {
	Kind    AdjustmentKind `json:"kind"`
	Percent money.Percent  `json:"percent,omitempty"`
	Amount  money.Money    `json:"amount,omitempty"`
}

// NewPercentageAdjustment надбавка в процентах от базовой цены
func NewPercentageAdjustment(p money.Percent) Adjustment {
	return Adjustment{Kind: AdjustmentPercentage, Percent: p}
}

// NewFixedAdjustment фиксированная надбавка
func NewFixedAdjustment(amount money.Money) Adjustment {
	return Adjustment{Kind: AdjustmentFixed, Amount: amount}
}

// Validate проверяет, что заполнено ровно поле своего типа
func (a Adjustment) Validate() error {
	switch a.Kind {
	case AdjustmentPercentage:
		if a.Amount != 0 {
			return fmt.Errorf("%w: percentage adjustment must not carry a fixed amount", ErrInvalidAdjustment)
		}
	case AdjustmentFixed:
		if a.Percent != 0 {
			return fmt.Errorf("%w: fixed adjustment must not carry a percent", ErrInvalidAdjustment)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidAdjustment, a.Kind)
	}
	return nil
}

// Effect вклад надбавки в subtotal. Процент всегда считается от исходной базы
func (a Adjustment) Effect(base money.Money) money.Money {
	if a.Kind == AdjustmentPercentage {
		return base.MulPercent(a.Percent)
	}
	return a.Amount
}

// RateRow строка прайс-листа: цена одной конфигурации услуги
type RateRow struct {
	ID            string       `json:"id"`
	ServiceKind   ServiceKind  `json:"serviceKind"`
	HourPackage   *int         `json:"hourPackage,omitempty"` // только для hourly
	VehicleClass  string       `json:"vehicleClass"`
	Armored       bool         `json:"armored"`
	DriverClass   string       `json:"driverClass"`
	ClientPrice   money.Money  `json:"clientPrice"`
	SupplierPrice money.Money  `json:"supplierPrice"`
	Adjustments   []Adjustment `json:"adjustments"`
	Active        bool         `json:"active"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// RateRowInput поля для создания строки прайса
type RateRowInput struct {
	ServiceKind   ServiceKind
	HourPackage   *int
	VehicleClass  string
	Armored       bool
	DriverClass   string
	ClientPrice   money.Money
	SupplierPrice money.Money
	Adjustments   []Adjustment
	Active        bool
}

// NewRateRow создаёт строку прайса, отклоняя недопустимые комбинации
// (например, hourly без пакета часов)
func NewRateRow(in RateRowInput) (RateRow, error) {
	row := RateRow{
		ServiceKind:   in.ServiceKind,
		HourPackage:   in.HourPackage,
		VehicleClass:  strings.TrimSpace(in.VehicleClass),
		Armored:       in.Armored,
		DriverClass:   strings.TrimSpace(in.DriverClass),
		ClientPrice:   in.ClientPrice,
		SupplierPrice: in.SupplierPrice,
		Adjustments:   append([]Adjustment(nil), in.Adjustments...),
		Active:        in.Active,
	}
	if err := row.Validate(); err != nil {
		return RateRow{}, err
	}
	return row, nil
}

// Validate проверяет инварианты строки прайса
func (r RateRow) Validate() error {
	if err := validateServiceShape(r.ServiceKind, r.HourPackage); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRateRow, err)
	}
	if r.VehicleClass == "" {
		return fmt.Errorf("%w: vehicle class is required", ErrInvalidRateRow)
	}
	if r.DriverClass == "" {
		return fmt.Errorf("%w: driver class is required", ErrInvalidRateRow)
	}
	if r.ClientPrice.IsNegative() || r.SupplierPrice.IsNegative() {
		return fmt.Errorf("%w: prices must not be negative", ErrInvalidRateRow)
	}
	for i, adj := range r.Adjustments {
		if err := adj.Validate(); err != nil {
			return fmt.Errorf("%w: adjustment #%d: %v", ErrInvalidRateRow, i, err)
		}
	}
	return nil
}

// RateRequest характеристики услуги, по которым ищется строка прайса
type RateRequest struct {
	ServiceKind  ServiceKind
	HourPackage  *int
	VehicleClass string
	Armored      bool
	DriverClass  string
}

// Validate проверяет запрос тарифа. Пакет часов у transfer игнорируется, а не отклоняется
func (r RateRequest) Validate() error {
	hourPackage := r.HourPackage
	if r.ServiceKind == ServiceTransfer {
		hourPackage = nil
	}
	if err := validateServiceShape(r.ServiceKind, hourPackage); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRateRequest, err)
	}
	if strings.TrimSpace(r.VehicleClass) == "" {
		return fmt.Errorf("%w: vehicle class is required", ErrInvalidRateRequest)
	}
	if strings.TrimSpace(r.DriverClass) == "" {
		return fmt.Errorf("%w: driver class is required", ErrInvalidRateRequest)
	}
	return nil
}

// validateServiceShape пакет часов обязателен для hourly и запрещён для transfer
func validateServiceShape(kind ServiceKind, hourPackage *int) error {
	switch kind {
	case ServiceHourly:
		if hourPackage == nil {
			return fmt.Errorf("hourly service requires an hour package")
		}
		if *hourPackage <= 0 {
			return fmt.Errorf("hour package must be positive, got %d", *hourPackage)
		}
	case ServiceTransfer:
		if hourPackage != nil {
			return fmt.Errorf("transfer service must not have an hour package")
		}
	default:
		return fmt.Errorf("unknown service kind %q", kind)
	}
	return nil
}
