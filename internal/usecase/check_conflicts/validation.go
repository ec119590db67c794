package check_conflicts

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TransferService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	if !req.End.After(req.Start) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidInterval)
	}

	if strings.TrimSpace(req.VehicleClass) == "" || strings.TrimSpace(req.DriverClass) == "" {
		return fmt.Errorf("%w: vehicleClass and driverClass are required", ErrInvalidInput)
	}

	if req.Outsourcing == "" {
		req.Outsourcing = domain.OutsourcingNone
	}
	if !req.Outsourcing.IsValid() {
		return fmt.Errorf("%w: unknown outsourcing mode %q", ErrInvalidInput, req.Outsourcing)
	}

	hasSupplier := req.SupplierID != nil && strings.TrimSpace(*req.SupplierID) != ""
	if (req.Outsourcing == domain.OutsourcingNone) == hasSupplier {
		return fmt.Errorf("%w: supplier must be set if and only if outsourced", ErrInvalidInput)
	}

	return nil
}
