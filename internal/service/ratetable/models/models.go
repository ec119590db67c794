package models

import (
	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/pkg/money"
)

// Request модели

// AdjustmentRequest надбавка к базовой цене
type AdjustmentRequest struct {
	Kind    string         `json:"kind"`              // percentage | fixed
	Percent *money.Percent `json:"percent,omitempty"` // для percentage
	Amount  *money.Money   `json:"amount,omitempty"`  // для fixed
}

// CreateRateRequest запрос на добавление строки прайса
type CreateRateRequest struct {
	ServiceKind   string              `json:"serviceKind"`
	HourPackage   *int                `json:"hourPackage,omitempty"`
	VehicleClass  string              `json:"vehicleClass"`
	Armored       bool                `json:"armored"`
	DriverClass   string              `json:"driverClass"`
	ClientPrice   money.Money         `json:"clientPrice"`
	SupplierPrice money.Money         `json:"supplierPrice"`
	Adjustments   []AdjustmentRequest `json:"adjustments,omitempty"`
	Active        *bool               `json:"active,omitempty"` // true по умолчанию
}

// ToDomainRateRow конвертирует запрос в строку прайса с проверкой инвариантов
func (r *CreateRateRequest) ToDomainRateRow() (domain.RateRow, error) {
	adjustments := make([]domain.Adjustment, 0, len(r.Adjustments))
	for _, a := range r.Adjustments {
		adj := domain.Adjustment{Kind: domain.AdjustmentKind(a.Kind)}
		if a.Percent != nil {
			adj.Percent = *a.Percent
		}
		if a.Amount != nil {
			adj.Amount = *a.Amount
		}
		adjustments = append(adjustments, adj)
	}

	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return domain.NewRateRow(domain.RateRowInput{
		ServiceKind:   domain.ServiceKind(r.ServiceKind),
		HourPackage:   r.HourPackage,
		VehicleClass:  r.VehicleClass,
		Armored:       r.Armored,
		DriverClass:   r.DriverClass,
		ClientPrice:   r.ClientPrice,
		SupplierPrice: r.SupplierPrice,
		Adjustments:   adjustments,
		Active:        active,
	})
}

// Response модели

// RateListResponse ответ со списком строк прайса
type RateListResponse struct {
	Rates []domain.RateRow `json:"rates"`
}

// FromDomainRateList конвертирует список строк в DTO
func FromDomainRateList(rows []domain.RateRow) *RateListResponse {
	if rows == nil {
		rows = []domain.RateRow{}
	}
	return &RateListResponse{Rates: rows}
}
