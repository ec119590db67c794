package appointment

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-TransferService/internal/domain"
)

// attachOrders связывает записи с заказами. Запись без заказа (ручная блокировка)
// или с удалённым заказом возвращается с Order == nil.
func attachOrders(ctx context.Context, orders OrderReader, appts []domain.Appointment) ([]domain.ScheduledOrder, error) {
	ids := make([]string, 0, len(appts))
	for _, a := range appts {
		if a.OrderID != "" {
			ids = append(ids, a.OrderID)
		}
	}

	byID, err := orders.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadOrders, err)
	}

	result := make([]domain.ScheduledOrder, 0, len(appts))
	for _, a := range appts {
		result = append(result, domain.ScheduledOrder{
			Appointment: a,
			Order:       byID[a.OrderID],
		})
	}
	return result, nil
}

// sortByStart упорядочивает записи по началу, затем по ID
func sortByStart(appts []domain.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		if !appts[i].Start.Equal(appts[j].Start) {
			return appts[i].Start.Before(appts[j].Start)
		}
		return appts[i].ID < appts[j].ID
	})
}
