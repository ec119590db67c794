package check_conflicts

import (
	"time"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	checkConflicts "github.com/m04kA/SMC-TransferService/internal/usecase/check_conflicts"
)

// CheckConflictsRequest HTTP request model
type CheckConflictsRequest struct {
	AppointmentID string    `json:"appointmentId,omitempty"` // исключить собственную запись при переносе
	OrderID       string    `json:"orderId,omitempty"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	VehicleClass  string    `json:"vehicleClass"`
	Armored       bool      `json:"armored"`
	DriverClass   string    `json:"driverClass"`
	Outsourcing   string    `json:"outsourcing,omitempty"`
	SupplierID    *string   `json:"supplierId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CheckConflictsRequest) ToUseCaseRequest() *checkConflicts.Request {
	return &checkConflicts.Request{
		AppointmentID: r.AppointmentID,
		OrderID:       r.OrderID,
		Start:         r.Start,
		End:           r.End,
		VehicleClass:  r.VehicleClass,
		Armored:       r.Armored,
		DriverClass:   r.DriverClass,
		Outsourcing:   domain.OutsourcingMode(r.Outsourcing),
		SupplierID:    r.SupplierID,
	}
}
