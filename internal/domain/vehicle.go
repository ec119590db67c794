package domain

import (
	"fmt"
	"strings"
)

// Vehicle запись каталога классов автомобилей
type Vehicle struct {
	Class  string `json:"class"`
	Label  string `json:"label"`
	Seats  int    `json:"seats"`
	Active bool   `json:"active"`
}

// Validate проверяет запись каталога
func (v Vehicle) Validate() error {
	if strings.TrimSpace(v.Class) == "" {
		return fmt.Errorf("%w: class is required", ErrInvalidVehicle)
	}
	if v.Seats <= 0 {
		return fmt.Errorf("%w: seats must be positive", ErrInvalidVehicle)
	}
	return nil
}

// DefaultVehicleCatalog каталог, создаваемый при первом запуске
func DefaultVehicleCatalog() []Vehicle {
	return []Vehicle{
		{Class: "sedan", Label: "Executive sedan", Seats: 3, Active: true},
		{Class: "suv", Label: "SUV", Seats: 4, Active: true},
		{Class: "van", Label: "Van", Seats: 10, Active: true},
		{Class: "minibus", Label: "Minibus", Seats: 18, Active: true},
	}
}
