package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/fuellog-go/internal/domain/entity"
)

func sampleFillings() []entity.UsageRecord {
	return []entity.UsageRecord{
		fuelRec("a", 10000, 40, 60, day(0)),
		fuelRec("c", 11300, 42, 63, day(20)),
		fuelRec("b", 10600, 36, 54, day(10)),
	}
}

func TestTotalCost_ZeroVersusNull(t *testing.T) {
	assert.Equal(t, 0.0, TotalCost(nil, Cost))
	assert.Nil(t, AverageEventCost(nil, Cost))
	assert.InDelta(t, 177.0, TotalCost(sampleFillings(), Cost), 1e-9)
}

func TestAverageEventCost(t *testing.T) {
	got := AverageEventCost(sampleFillings(), Cost)
	require.NotNil(t, got)
	assert.InDelta(t, 59.0, *got, 1e-9)
}

func TestAveragePricePerUnit(t *testing.T) {
	got := AveragePricePerUnit(sampleFillings(), Cost, Quantity)
	require.NotNil(t, got)
	assert.InDelta(t, 177.0/118.0, *got, 1e-9)

	assert.Nil(t, AveragePricePerUnit(nil, Cost, Quantity))
	assert.Nil(t, AveragePricePerUnit([]entity.UsageRecord{fuelRec("z", 1, 0, 5, day(0))}, Cost, Quantity))
}

func TestCostPerDistance(t *testing.T) {
	got := CostPerDistance(sampleFillings())
	require.NotNil(t, got)
	// b (54) over 600 km, c (63) over 700 km
	assert.InDelta(t, 117.0/1300*100, *got, 1e-9)

	assert.Nil(t, CostPerDistance(sampleFillings()[:1]))
}

func TestDistanceStatistics(t *testing.T) {
	records := sampleFillings()

	total := TotalDistanceCovered(records)
	require.NotNil(t, total)
	assert.InDelta(t, 1300.0, *total, 1e-9)

	avg := AverageDistanceBetweenEvents(records)
	require.NotNil(t, avg)
	assert.InDelta(t, 650.0, *avg, 1e-9)

	longest := LongestSingleInterval(records)
	require.NotNil(t, longest)
	assert.InDelta(t, 700.0, *longest, 1e-9)
}

func TestDistanceStatistics_Insufficient(t *testing.T) {
	one := sampleFillings()[:1]
	assert.Nil(t, TotalDistanceCovered(one))
	assert.Nil(t, AverageDistanceBetweenEvents(one))
	assert.Nil(t, LongestSingleInterval(one))

	same := []entity.UsageRecord{fuelRec("a", 500, 10, 1, day(0)), fuelRec("b", 500, 10, 1, day(1))}
	assert.Nil(t, TotalDistanceCovered(same))
	assert.Nil(t, AverageDistanceBetweenEvents(same))
	assert.Nil(t, LongestSingleInterval(same))
}

func TestAverageDaysBetweenEvents(t *testing.T) {
	got := AverageDaysBetweenEvents(sampleFillings())
	require.NotNil(t, got)
	assert.InDelta(t, 10.0, *got, 1e-9)

	assert.Nil(t, AverageDaysBetweenEvents(sampleFillings()[:1]))
}

func TestAverageDaysBetweenEvents_CountsZeroGaps(t *testing.T) {
	records := []entity.UsageRecord{
		fuelRec("a", 100, 10, 1, day(0)),
		fuelRec("b", 200, 10, 1, day(0)),
		fuelRec("c", 300, 10, 1, day(6)),
	}
	got := AverageDaysBetweenEvents(records)
	require.NotNil(t, got)
	assert.InDelta(t, 3.0, *got, 1e-9)
}

func TestDaysSinceMostRecentEvent(t *testing.T) {
	assert.Nil(t, DaysSinceMostRecentEvent(nil, day(0)))

	got := DaysSinceMostRecentEvent(sampleFillings(), day(25.5))
	require.NotNil(t, got)
	assert.Equal(t, 5.0, *got)
}
