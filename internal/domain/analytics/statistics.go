package analytics

import (
	"github.com/diillson/fuellog-go/internal/domain/entity"
)

// Options configures ComputeStatistics. Now is supplied by the caller so the
// computation stays pure.
type Options struct {
	Bounds    PlausibilityBounds
	DateStyle DateStyle
	Now       entity.EpochMillis
}

// StreamStatisticsOf computes every scalar statistic for one event stream.
func StreamStatisticsOf(c entity.Category, records []entity.UsageRecord, now entity.EpochMillis) entity.StreamStatistics {
	stats := entity.StreamStatistics{
		Category:            c,
		EventCount:          len(records),
		TotalQuantity:       TotalCost(records, Quantity),
		AverageConsumption:  AverageConsumption(records, Quantity),
		AveragePricePerUnit: AveragePricePerUnit(records, Cost, Quantity),
		AverageEventCost:    AverageEventCost(records, Cost),
		TotalCost:           TotalCost(records, Cost),
		CostPer100Km:        CostPerDistance(records),
		TotalDistanceKm:     TotalDistanceCovered(records),
		AverageDistanceKm:   AverageDistanceBetweenEvents(records),
		LongestIntervalKm:   LongestSingleInterval(records),
		AverageDaysBetween:  AverageDaysBetweenEvents(records),
		DaysSinceLast:       DaysSinceMostRecentEvent(records, now),
	}
	if latest, ok := MostRecentDate(records); ok {
		stats.LastEventAt = &latest
	}
	return stats
}

// includeStream decide se um fluxo entra no relatório.
func includeStream(vt entity.VehicleType, uses bool, records []entity.UsageRecord) bool {
	if !uses {
		return false
	}
	return vt != "" || len(records) > 0
}

// ComputeStatistics builds the statistics object for one vehicle. Streams the
// vehicle type does not use are left nil.
func ComputeStatistics(v entity.Vehicle, fuel, charging []entity.UsageRecord, opts Options) entity.Statistics {
	stats := entity.Statistics{
		VehicleID:   v.ID,
		VehicleType: v.Type,
		ComputedAt:  opts.Now,
	}

	var diags []entity.Diagnostic
	if includeStream(v.Type, v.Type.UsesFuel(), fuel) {
		s := StreamStatisticsOf(entity.CategoryFuel, fuel, opts.Now)
		stats.Fuel = &s
		stats.TotalCost += s.TotalCost
		diags = append(diags, CheckChronology(fuel)...)
	}
	if includeStream(v.Type, v.Type.UsesElectricity(), charging) {
		s := StreamStatisticsOf(entity.CategoryElectricity, charging, opts.Now)
		stats.Electricity = &s
		stats.TotalCost += s.TotalCost
		diags = append(diags, CheckChronology(charging)...)
	}

	series, seriesDiags := BuildConsumptionSeries(fuel, charging, v.Type, SeriesOptions{
		Bounds:    opts.Bounds,
		DateStyle: opts.DateStyle,
	})
	stats.Series = series
	stats.Diagnostics = append(diags, seriesDiags...)
	return stats
}
