package get_agenda

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TransferService/internal/domain"
)

// parseBound разбирает границу периода: RFC3339 или дата YYYY-MM-DD в часовом поясе бизнеса
func parseBound(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	t, err := time.ParseInLocation(domain.DateFormat, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC3339 or %s, got %q", domain.DateFormat, value)
	}
	return t, nil
}
