package get_agenda

import "fmt"

// validateRequest валидирует период
func validateRequest(req *Request) error {
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if !req.To.After(req.From) {
		return fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}

	if req.To.Sub(req.From) > MaxRange {
		return fmt.Errorf("%w: range must not exceed %s", ErrInvalidInput, MaxRange)
	}

	return nil
}
