package entity

// Category distingue os dois fluxos de eventos de uso.
type Category string

const (
	CategoryFuel        Category = "fuel"
	CategoryElectricity Category = "electricity"
)

// ChargerLocation descreve onde uma recarga aconteceu.
type ChargerLocation struct {
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	ChargerType string `json:"charger_type,omitempty" yaml:"charger_type,omitempty"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
}

// FillingEvent represents a fuel filling as entered by the user.
type FillingEvent struct {
	ID         string  `json:"id" yaml:"id"`
	OdometerKm float64 `json:"odometer_km" yaml:"odometer_km"`
	Liters     float64 `json:"liters" yaml:"liters"`
	Cost       float64 `json:"cost" yaml:"cost"`
	Date       RawDate `json:"date" yaml:"date"`
}

// ChargingEvent represents an EV charging session as entered by the user.
type ChargingEvent struct {
	ID             string           `json:"id" yaml:"id"`
	OdometerKm     float64          `json:"odometer_km" yaml:"odometer_km"`
	EnergyAddedKWh float64          `json:"energy_added_kwh" yaml:"energy_added_kwh"`
	Cost           float64          `json:"cost" yaml:"cost"`
	Date           RawDate          `json:"date" yaml:"date"`
	Location       *ChargerLocation `json:"location,omitempty" yaml:"location,omitempty"`
}

// UsageRecord é um evento já normalizado: data canônica e quantidade genérica
// (litros para combustível, kWh para eletricidade).
type UsageRecord struct {
	ID         string           `json:"id"`
	Category   Category         `json:"category"`
	OdometerKm float64          `json:"odometer_km"`
	Quantity   float64          `json:"quantity"`
	Cost       float64          `json:"cost"`
	Date       EpochMillis      `json:"date"`
	Location   *ChargerLocation `json:"location,omitempty"`
}
