package cancel_order

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-TransferService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.OrderID) == "" {
		return fmt.Errorf("%w: orderID is required", ErrInvalidInput)
	}

	if utf8.RuneCountInString(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return nil
}
