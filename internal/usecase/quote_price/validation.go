package quote_price

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if err := req.RateRequest().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.ManualAmount != nil && req.ManualAmount.IsNegative() {
		return fmt.Errorf("%w: manual amount must not be negative", ErrInvalidInput)
	}

	return nil
}
