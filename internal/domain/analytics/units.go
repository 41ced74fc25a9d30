package analytics

import (
	"strings"

	"github.com/diillson/fuellog-go/internal/domain/entity"
)

// Fatores de conversão. Milhas usam um par recíproco exato para que
// KmToMiles(MilesToKm(x)) == x dentro da precisão de ponto flutuante.
const (
	MPGFactor       = 235.214583
	KmPerMile       = 1.60934
	MilesPerKm      = 1 / KmPerMile
	LitersPerGallon = 3.78541
)

// LitersPer100KmToMPG inverts consumption into fuel economy. Zero or nil yields nil.
func LitersPer100KmToMPG(lPer100 *float64) *float64 {
	if lPer100 == nil || *lPer100 == 0 {
		return nil
	}
	return ptr(MPGFactor / *lPer100)
}

// MPGToLitersPer100Km is the inverse of LitersPer100KmToMPG.
func MPGToLitersPer100Km(mpg *float64) *float64 {
	if mpg == nil || *mpg == 0 {
		return nil
	}
	return ptr(MPGFactor / *mpg)
}

// KWhPer100KmToPer100Mi converte kWh/100km em kWh/100mi.
func KWhPer100KmToPer100Mi(v float64) float64 { return v * KmPerMile }

// KWhPer100MiToPer100Km converte kWh/100mi em kWh/100km.
func KWhPer100MiToPer100Km(v float64) float64 { return v / KmPerMile }

// LitersToGallons converte litros em galões americanos.
func LitersToGallons(l float64) float64 { return l / LitersPerGallon }

// GallonsToLiters converte galões americanos em litros.
func GallonsToLiters(g float64) float64 { return g * LitersPerGallon }

// KmToMiles converte quilômetros em milhas.
func KmToMiles(km float64) float64 { return km * MilesPerKm }

// MilesToKm converte milhas em quilômetros.
func MilesToKm(mi float64) float64 { return mi * KmPerMile }

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
}

// CurrencySymbol maps a currency code to its symbol; unknown codes fall back to "€".
func CurrencySymbol(code string) string {
	if s, ok := currencySymbols[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return s
	}
	return currencySymbols["EUR"]
}

// The Present* helpers convert canonical metric values at the presentation
// boundary. nil stays nil.

// PresentConsumption converts a per-100km rate for display.
func PresentConsumption(c entity.Category, v *float64, us entity.UnitSystem) *float64 {
	if v == nil || us != entity.UnitSystemImperial {
		return v
	}
	if c == entity.CategoryElectricity {
		return ptr(KWhPer100KmToPer100Mi(*v))
	}
	return LitersPer100KmToMPG(v)
}

// ConsumptionUnit devolve o símbolo da unidade de consumo.
func ConsumptionUnit(c entity.Category, us entity.UnitSystem) string {
	switch {
	case c == entity.CategoryElectricity && us == entity.UnitSystemImperial:
		return "kWh/100mi"
	case c == entity.CategoryElectricity:
		return "kWh/100km"
	case us == entity.UnitSystemImperial:
		return "MPG"
	}
	return "L/100km"
}

// PresentDistance converts kilometres for display.
func PresentDistance(km *float64, us entity.UnitSystem) *float64 {
	if km == nil || us != entity.UnitSystemImperial {
		return km
	}
	return ptr(KmToMiles(*km))
}

// DistanceUnit devolve "km" ou "mi".
func DistanceUnit(us entity.UnitSystem) string {
	if us == entity.UnitSystemImperial {
		return "mi"
	}
	return "km"
}

// PresentQuantity converts litres to gallons under imperial; kWh is unchanged.
func PresentQuantity(c entity.Category, v float64, us entity.UnitSystem) float64 {
	if c == entity.CategoryFuel && us == entity.UnitSystemImperial {
		return LitersToGallons(v)
	}
	return v
}

// QuantityUnit devolve "L", "gal" ou "kWh".
func QuantityUnit(c entity.Category, us entity.UnitSystem) string {
	switch {
	case c == entity.CategoryElectricity:
		return "kWh"
	case us == entity.UnitSystemImperial:
		return "gal"
	}
	return "L"
}

// PresentPricePerUnit converts a price per litre to a price per gallon under imperial.
func PresentPricePerUnit(c entity.Category, v *float64, us entity.UnitSystem) *float64 {
	if v == nil || c != entity.CategoryFuel || us != entity.UnitSystemImperial {
		return v
	}
	return ptr(*v * LitersPerGallon)
}

// PresentCostPerDistance converts cost per 100 km into cost per 100 mi under imperial.
func PresentCostPerDistance(v *float64, us entity.UnitSystem) *float64 {
	if v == nil || us != entity.UnitSystemImperial {
		return v
	}
	return ptr(*v * KmPerMile)
}
