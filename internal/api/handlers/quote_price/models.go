package quote_price

import (
	"github.com/m04kA/SMC-TransferService/internal/domain"
	quotePrice "github.com/m04kA/SMC-TransferService/internal/usecase/quote_price"
	"github.com/m04kA/SMC-TransferService/pkg/money"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	ServiceKind  string       `json:"serviceKind"`
	HourPackage  *int         `json:"hourPackage,omitempty"`
	VehicleClass string       `json:"vehicleClass"`
	Armored      bool         `json:"armored"`
	DriverClass  string       `json:"driverClass"`
	ManualAmount *money.Money `json:"manualAmount,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *QuoteRequest) ToUseCaseRequest() *quotePrice.Request {
	return &quotePrice.Request{
		ServiceKind:  domain.ServiceKind(r.ServiceKind),
		HourPackage:  r.HourPackage,
		VehicleClass: r.VehicleClass,
		Armored:      r.Armored,
		DriverClass:  r.DriverClass,
		ManualAmount: r.ManualAmount,
	}
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	PriceSource  string        `json:"priceSource"`
	RateRowID    *string       `json:"rateRowId,omitempty"`
	SupplierCost money.Money   `json:"supplierCost"`
	Subtotal     money.Money   `json:"subtotal"`
	TaxPercent   money.Percent `json:"taxPercent"`
	Tax          money.Money   `json:"tax"`
	Total        money.Money   `json:"total"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *quotePrice.Response) *QuoteResponse {
	return &QuoteResponse{
		PriceSource:  string(resp.PriceSource),
		RateRowID:    resp.RateRowID,
		SupplierCost: resp.SupplierCost,
		Subtotal:     resp.Subtotal,
		TaxPercent:   resp.TaxPercent,
		Tax:          resp.Tax,
		Total:        resp.Total,
	}
}
