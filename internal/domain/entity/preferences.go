package entity

import "strings"

// UnitSystem selects how values are presented; calculations are always metric.
type UnitSystem string

const (
	UnitSystemMetric   UnitSystem = "metric"
	UnitSystemImperial UnitSystem = "imperial"
)

// Preferences are the user's display preferences.
type Preferences struct {
	UnitSystem UnitSystem `json:"unit_system" yaml:"unit_system"`
	Currency   string     `json:"currency" yaml:"currency"`
}

// DefaultPreferences devolve {metric, EUR}.
func DefaultPreferences() Preferences {
	return Preferences{UnitSystem: UnitSystemMetric, Currency: "EUR"}
}

// Normalized fills empty or unknown fields with the defaults.
func (p Preferences) Normalized() Preferences {
	out := DefaultPreferences()
	switch UnitSystem(strings.ToLower(string(p.UnitSystem))) {
	case UnitSystemImperial:
		out.UnitSystem = UnitSystemImperial
	}
	if c := strings.ToUpper(strings.TrimSpace(p.Currency)); c != "" {
		out.Currency = c
	}
	return out
}
