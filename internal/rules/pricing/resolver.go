// Package pricing подбирает строку прайса и считает цену заказа.
// Все функции чистые: работают только с переданными данными.
package pricing

import (
	"github.com/m04kA/SMC-TransferService/internal/domain"
)

// Resolve возвращает первую активную строку прайса, подходящую под запрос.
// Порядок строк значим: при дублях побеждает первая. ok=false если совпадений нет.
func Resolve(rows []domain.RateRow, req domain.RateRequest) (domain.RateRow, bool) {
	for _, row := range rows {
		if Matches(row, req) {
			return row, true
		}
	}
	return domain.RateRow{}, false
}

// Matches проверяет, подходит ли активная строка под запрос.
// Пакет часов сравнивается только для hourly, для transfer игнорируется с обеих сторон.
func Matches(row domain.RateRow, req domain.RateRequest) bool {
	if !row.Active {
		return false
	}
	if row.ServiceKind != req.ServiceKind ||
		row.VehicleClass != req.VehicleClass ||
		row.Armored != req.Armored ||
		row.DriverClass != req.DriverClass {
		return false
	}
	if req.ServiceKind == domain.ServiceHourly {
		return samePackage(row.HourPackage, req.HourPackage)
	}
	return true
}

func samePackage(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
