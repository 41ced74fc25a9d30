package analytics

import (
	"slices"

	"github.com/diillson/fuellog-go/internal/domain/entity"
)

// Field selects a numeric attribute of a usage record.
type Field func(entity.UsageRecord) float64

// Campos predefinidos.
var (
	Quantity Field = func(r entity.UsageRecord) float64 { return r.Quantity }
	Cost     Field = func(r entity.UsageRecord) float64 { return r.Cost }
	Odometer Field = func(r entity.UsageRecord) float64 { return r.OdometerKm }
)

// sortedBy returns a stably sorted copy; ties keep input order.
func sortedBy(records []entity.UsageRecord, key Field) []entity.UsageRecord {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b entity.UsageRecord) int {
		ka, kb := key(a), key(b)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		}
		return 0
	})
	return out
}

// walkPositiveDeltas sorts by distance and calls fn for every adjacent pair
// whose distance is strictly positive.
func walkPositiveDeltas(records []entity.UsageRecord, distance Field, fn func(prev, curr entity.UsageRecord, delta float64)) {
	sorted := sortedBy(records, distance)
	for i := 1; i < len(sorted); i++ {
		delta := distance(sorted[i]) - distance(sorted[i-1])
		if delta <= 0 {
			continue
		}
		fn(sorted[i-1], sorted[i], delta)
	}
}

// ratePer100 accumulates field over positive-distance pairs and scales by 100.
func ratePer100(records []entity.UsageRecord, field, distance Field) *float64 {
	if len(records) < 2 {
		return nil
	}
	var totalDistance, total float64
	walkPositiveDeltas(records, distance, func(_, curr entity.UsageRecord, delta float64) {
		totalDistance += delta
		total += field(curr)
	})
	if totalDistance <= 0 {
		return nil
	}
	v := total / totalDistance * 100
	return &v
}

// AverageConsumption returns the average consumption per 100 km (L/100km or
// kWh/100km depending on the quantity), or nil when fewer than two records or
// no positive odometer delta exist. The first record's quantity never counts:
// each filling pays for the distance since the previous one.
func AverageConsumption(records []entity.UsageRecord, quantity Field) *float64 {
	return ratePer100(records, quantity, Odometer)
}

// AverageConsumptionOver is AverageConsumption with an explicit distance field.
func AverageConsumptionOver(records []entity.UsageRecord, quantity, distance Field) *float64 {
	return ratePer100(records, quantity, distance)
}
