package quote_price

import (
	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/pkg/money"
)

// Request модель запроса на расчёт цены
type Request struct {
	ServiceKind  domain.ServiceKind // transfer | hourly
	HourPackage  *int               // Пакет часов, только для hourly
	VehicleClass string             // Класс автомобиля из каталога
	Armored      bool               // Бронированный автомобиль
	DriverClass  string             // Языковой класс водителя
	ManualAmount *money.Money       // Ручная цена вместо прайса (опционально)
}

// RateRequest характеристики для поиска в прайсе
func (r *Request) RateRequest() domain.RateRequest {
	return domain.RateRequest{
		ServiceKind:  r.ServiceKind,
		HourPackage:  r.HourPackage,
		VehicleClass: r.VehicleClass,
		Armored:      r.Armored,
		DriverClass:  r.DriverClass,
	}
}

// Response модель ответа с рассчитанной ценой
type Response struct {
	PriceSource  domain.PriceSource // table | manual
	RateRowID    *string            // Строка прайса, если цена из прайса
	SupplierCost money.Money        // Себестоимость поставщика по прайсу
	Subtotal     money.Money
	TaxPercent   money.Percent
	Tax          money.Money
	Total        money.Money
}
