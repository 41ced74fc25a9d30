package analytics

import (
	"github.com/diillson/fuellog-go/internal/domain/entity"
)

// PlausibilityBounds are the inclusive per-100km rate ranges a series point
// must fall into. They are a heuristic against data-entry errors, not physics.
type PlausibilityBounds struct {
	FuelMin     float64 `json:"fuel_min" yaml:"fuel_min" toml:"fuel_min"`
	FuelMax     float64 `json:"fuel_max" yaml:"fuel_max" toml:"fuel_max"`
	ElectricMin float64 `json:"electric_min" yaml:"electric_min" toml:"electric_min"`
	ElectricMax float64 `json:"electric_max" yaml:"electric_max" toml:"electric_max"`
}

// DefaultBounds devolve 3–30 L/100km e 1–50 kWh/100km.
func DefaultBounds() PlausibilityBounds {
	return PlausibilityBounds{FuelMin: 3, FuelMax: 30, ElectricMin: 1, ElectricMax: 50}
}

// WithDefaults replaces an unset (zero min and max) range with the default one.
func (b PlausibilityBounds) WithDefaults() PlausibilityBounds {
	d := DefaultBounds()
	if b.FuelMin == 0 && b.FuelMax == 0 {
		b.FuelMin, b.FuelMax = d.FuelMin, d.FuelMax
	}
	if b.ElectricMin == 0 && b.ElectricMax == 0 {
		b.ElectricMin, b.ElectricMax = d.ElectricMin, d.ElectricMax
	}
	return b
}

// Contains reports whether rate is plausible for the category.
func (b PlausibilityBounds) Contains(c entity.Category, rate float64) bool {
	if c == entity.CategoryElectricity {
		return rate >= b.ElectricMin && rate <= b.ElectricMax
	}
	return rate >= b.FuelMin && rate <= b.FuelMax
}

// SeriesOptions configura BuildConsumptionSeries.
type SeriesOptions struct {
	Bounds    PlausibilityBounds
	DateStyle DateStyle
}

// BuildConsumptionSeries produces the consumption-over-time points. Records
// are merged and sorted by odometer, but only same-category neighbours form a
// pair, so fuel and electricity are walked independently even when
// interleaved. Pairs with a non-positive distance and rates outside the
// plausibility bounds are dropped and reported as diagnostics. Sequence
// indexes restart at 0 in each category.
func BuildConsumptionSeries(fuel, charging []entity.UsageRecord, vt entity.VehicleType, opts SeriesOptions) (entity.Series, []entity.Diagnostic) {
	bounds := opts.Bounds.WithDefaults()

	var merged []entity.UsageRecord
	if vt.UsesFuel() {
		merged = append(merged, fuel...)
	}
	if vt.UsesElectricity() {
		merged = append(merged, charging...)
	}
	merged = sortedBy(merged, Odometer)

	series := entity.Series{
		Fuel:        []entity.ConsumptionPoint{},
		Electricity: []entity.ConsumptionPoint{},
		Combined:    []entity.ConsumptionPoint{},
	}
	var diags []entity.Diagnostic
	prev := make(map[entity.Category]entity.UsageRecord, 2)

	for _, curr := range merged {
		p, ok := prev[curr.Category]
		prev[curr.Category] = curr
		if !ok {
			continue
		}

		distance := curr.OdometerKm - p.OdometerKm
		if distance <= 0 {
			diags = append(diags, entity.Diagnostic{
				EventID:        curr.ID,
				Category:       curr.Category,
				Reason:         entity.ReasonNonPositiveDelta,
				RelatedEventID: p.ID,
				Value:          ptr(distance),
			})
			continue
		}
		if curr.Quantity <= 0 {
			diags = append(diags, entity.Diagnostic{
				EventID:  curr.ID,
				Category: curr.Category,
				Reason:   entity.ReasonNonPositiveAmount,
				Value:    ptr(curr.Quantity),
			})
			continue
		}

		rate := curr.Quantity / distance * 100
		if !bounds.Contains(curr.Category, rate) {
			diags = append(diags, entity.Diagnostic{
				EventID:        curr.ID,
				Category:       curr.Category,
				Reason:         entity.ReasonImplausibleRate,
				RelatedEventID: p.ID,
				Value:          ptr(rate),
			})
			continue
		}

		point := entity.ConsumptionPoint{
			DateLabel:  FormatDateLabel(curr.Date, opts.DateStyle),
			Value:      rate,
			Category:   curr.Category,
			OdometerKm: curr.OdometerKm,
			Date:       curr.Date,
		}
		if curr.Category == entity.CategoryElectricity {
			point.SequenceIndex = len(series.Electricity)
			series.Electricity = append(series.Electricity, point)
		} else {
			point.SequenceIndex = len(series.Fuel)
			series.Fuel = append(series.Fuel, point)
		}
		series.Combined = append(series.Combined, point)
	}

	return series, diags
}
