package analytics

import (
	"math"

	"github.com/diillson/fuellog-go/internal/domain/entity"
)

func ptr(v float64) *float64 { return &v }

// AveragePricePerUnit is total cost divided by total quantity (price per L or kWh).
func AveragePricePerUnit(records []entity.UsageRecord, cost, quantity Field) *float64 {
	var totalCost, totalQuantity float64
	for _, r := range records {
		totalCost += cost(r)
		totalQuantity += quantity(r)
	}
	if totalQuantity == 0 {
		return nil
	}
	return ptr(totalCost / totalQuantity)
}

// AverageEventCost is the mean cost per event; nil for an empty list.
func AverageEventCost(records []entity.UsageRecord, cost Field) *float64 {
	if len(records) == 0 {
		return nil
	}
	return ptr(TotalCost(records, cost) / float64(len(records)))
}

// TotalCost sums the cost field. An empty list spends zero, it is not "no data".
func TotalCost(records []entity.UsageRecord, cost Field) float64 {
	var total float64
	for _, r := range records {
		total += cost(r)
	}
	return total
}

// CostPerDistance returns cost per 100 km using the same positive-distance
// pair walk as AverageConsumption.
func CostPerDistance(records []entity.UsageRecord) *float64 {
	return ratePer100(records, Cost, Odometer)
}

// TotalDistanceCovered is max(odometer) - min(odometer); nil with fewer than
// two records or a non-positive result.
func TotalDistanceCovered(records []entity.UsageRecord) *float64 {
	if len(records) < 2 {
		return nil
	}
	sorted := sortedBy(records, Odometer)
	d := sorted[len(sorted)-1].OdometerKm - sorted[0].OdometerKm
	if d <= 0 {
		return nil
	}
	return ptr(d)
}

// AverageDistanceBetweenEvents divides the covered distance by the number of intervals.
func AverageDistanceBetweenEvents(records []entity.UsageRecord) *float64 {
	total := TotalDistanceCovered(records)
	if total == nil {
		return nil
	}
	return ptr(*total / float64(len(records)-1))
}

// LongestSingleInterval is the largest positive adjacent odometer delta.
func LongestSingleInterval(records []entity.UsageRecord) *float64 {
	var longest *float64
	walkPositiveDeltas(records, Odometer, func(_, _ entity.UsageRecord, delta float64) {
		if longest == nil || delta > *longest {
			longest = ptr(delta)
		}
	})
	return longest
}

// AverageDaysBetweenEvents is the mean gap in (fractional) days between
// date-adjacent records. Zero or negative gaps are counted, not filtered.
func AverageDaysBetweenEvents(records []entity.UsageRecord) *float64 {
	if len(records) < 2 {
		return nil
	}
	sorted := sortedBy(records, func(r entity.UsageRecord) float64 { return float64(r.Date) })
	var sum float64
	for i := 1; i < len(sorted); i++ {
		sum += sorted[i-1].Date.DaysUntil(sorted[i].Date)
	}
	return ptr(sum / float64(len(sorted)-1))
}

// MostRecentDate returns the latest record date, false when empty.
func MostRecentDate(records []entity.UsageRecord) (entity.EpochMillis, bool) {
	if len(records) == 0 {
		return 0, false
	}
	latest := records[0].Date
	for _, r := range records[1:] {
		if r.Date > latest {
			latest = r.Date
		}
	}
	return latest, true
}

// DaysSinceMostRecentEvent returns whole days elapsed between the latest
// record and now; nil when empty.
func DaysSinceMostRecentEvent(records []entity.UsageRecord, now entity.EpochMillis) *float64 {
	latest, ok := MostRecentDate(records)
	if !ok {
		return nil
	}
	return ptr(math.Floor(latest.DaysUntil(now)))
}
