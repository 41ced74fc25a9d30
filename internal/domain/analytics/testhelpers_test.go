package analytics

import (
	"github.com/diillson/fuellog-go/internal/domain/entity"
)

// baseDay is 2024-03-15T00:00:00Z.
const baseDay entity.EpochMillis = 1710460800000

func day(n float64) entity.EpochMillis {
	return baseDay + entity.EpochMillis(n*24*60*60*1000)
}

func fuelRec(id string, odo, liters, cost float64, d entity.EpochMillis) entity.UsageRecord {
	return entity.UsageRecord{ID: id, Category: entity.CategoryFuel, OdometerKm: odo, Quantity: liters, Cost: cost, Date: d}
}

func elecRec(id string, odo, kwh, cost float64, d entity.EpochMillis) entity.UsageRecord {
	return entity.UsageRecord{ID: id, Category: entity.CategoryElectricity, OdometerKm: odo, Quantity: kwh, Cost: cost, Date: d}
}
