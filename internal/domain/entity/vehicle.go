package entity

import (
	"fmt"
	"strings"
)

// VehicleType identifica a motorização do veículo e, com isso, quais fluxos de
// eventos (abastecimentos e/ou recargas) fazem sentido para ele.
type VehicleType string

const (
	VehicleTypeICE    VehicleType = "ICE"
	VehicleTypeHybrid VehicleType = "HYBRID"
	VehicleTypePHEV   VehicleType = "PHEV"
	VehicleTypeBEV    VehicleType = "BEV"
)

// ParseVehicleType converte uma string (case-insensitive) em VehicleType.
func ParseVehicleType(s string) (VehicleType, error) {
	switch VehicleType(strings.ToUpper(strings.TrimSpace(s))) {
	case VehicleTypeICE:
		return VehicleTypeICE, nil
	case VehicleTypeHybrid:
		return VehicleTypeHybrid, nil
	case VehicleTypePHEV:
		return VehicleTypePHEV, nil
	case VehicleTypeBEV:
		return VehicleTypeBEV, nil
	}
	return "", fmt.Errorf("unknown vehicle type %q", s)
}

// UsesFuel reports whether fuel fillings are meaningful for the vehicle type.
// An unset type is permissive so that incomplete vehicle records still report
// whatever data exists.
func (t VehicleType) UsesFuel() bool {
	switch t {
	case VehicleTypeICE, VehicleTypeHybrid, VehicleTypePHEV, "":
		return true
	}
	return false
}

// UsesElectricity reports whether charging sessions are meaningful for the vehicle type.
func (t VehicleType) UsesElectricity() bool {
	switch t {
	case VehicleTypeBEV, VehicleTypePHEV, "":
		return true
	}
	return false
}

// Vehicle é o contexto do relatório; o engine nunca o altera.
type Vehicle struct {
	ID                 string      `json:"id" yaml:"id"`
	Name               string      `json:"name,omitempty" yaml:"name,omitempty"`
	Make               string      `json:"make,omitempty" yaml:"make,omitempty"`
	Model              string      `json:"model,omitempty" yaml:"model,omitempty"`
	Year               int         `json:"year,omitempty" yaml:"year,omitempty"`
	Type               VehicleType `json:"vehicle_type" yaml:"vehicle_type"`
	FuelTankSizeL      *float64    `json:"fuel_tank_size_l,omitempty" yaml:"fuel_tank_size_l,omitempty"`
	BatteryCapacityKWh *float64    `json:"battery_capacity_kwh,omitempty" yaml:"battery_capacity_kwh,omitempty"`
}

// DisplayName devolve o nome amigável do veículo.
func (v Vehicle) DisplayName() string {
	if v.Name != "" {
		return v.Name
	}
	name := strings.TrimSpace(v.Make + " " + v.Model)
	if name == "" {
		return v.ID
	}
	return name
}
