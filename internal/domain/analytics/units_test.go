package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/fuellog-go/internal/domain/entity"
)

func TestDistanceRoundTrip(t *testing.T) {
	for _, x := range []float64{0.001, 1, 42.195, 1609.34, 123456.789} {
		assert.InEpsilon(t, x, KmToMiles(MilesToKm(x)), 1e-6)
		assert.InEpsilon(t, x, MilesToKm(KmToMiles(x)), 1e-6)
	}
}

func TestFuelEconomyRoundTrip(t *testing.T) {
	for _, x := range []float64{3.2, 5.5, 7.8, 12, 29.9} {
		mpg := LitersPer100KmToMPG(&x)
		require.NotNil(t, mpg)
		back := MPGToLitersPer100Km(mpg)
		require.NotNil(t, back)
		assert.InEpsilon(t, x, *back, 1e-6)
	}
}

func TestFuelEconomy_GuardsZeroAndNil(t *testing.T) {
	zero := 0.0
	assert.Nil(t, LitersPer100KmToMPG(nil))
	assert.Nil(t, LitersPer100KmToMPG(&zero))
	assert.Nil(t, MPGToLitersPer100Km(&zero))
}

func TestConversions(t *testing.T) {
	eight := 8.0
	mpg := LitersPer100KmToMPG(&eight)
	require.NotNil(t, mpg)
	assert.InDelta(t, 29.4018, *mpg, 1e-4)

	assert.InDelta(t, 16.0934, KWhPer100KmToPer100Mi(10), 1e-9)
	assert.InDelta(t, 10.0, KWhPer100MiToPer100Km(16.0934), 1e-9)
	assert.InDelta(t, 10.0, LitersToGallons(37.8541), 1e-9)
	assert.InDelta(t, 37.8541, GallonsToLiters(10), 1e-9)
	assert.InDelta(t, 62.1371, KmToMiles(100), 1e-3)
}

func TestCurrencySymbol(t *testing.T) {
	assert.Equal(t, "€", CurrencySymbol("EUR"))
	assert.Equal(t, "$", CurrencySymbol("USD"))
	assert.Equal(t, "$", CurrencySymbol("usd"))
	assert.Equal(t, "€", CurrencySymbol("GBP"))
	assert.Equal(t, "€", CurrencySymbol(""))
}

func TestPresentConsumption(t *testing.T) {
	v := 8.0
	assert.Equal(t, &v, PresentConsumption(entity.CategoryFuel, &v, entity.UnitSystemMetric))

	imperial := PresentConsumption(entity.CategoryFuel, &v, entity.UnitSystemImperial)
	require.NotNil(t, imperial)
	assert.InDelta(t, MPGFactor/8, *imperial, 1e-9)

	e := 15.0
	eImp := PresentConsumption(entity.CategoryElectricity, &e, entity.UnitSystemImperial)
	require.NotNil(t, eImp)
	assert.InDelta(t, 15*KmPerMile, *eImp, 1e-9)

	assert.Nil(t, PresentConsumption(entity.CategoryFuel, nil, entity.UnitSystemImperial))
}

func TestUnitLabels(t *testing.T) {
	assert.Equal(t, "L/100km", ConsumptionUnit(entity.CategoryFuel, entity.UnitSystemMetric))
	assert.Equal(t, "MPG", ConsumptionUnit(entity.CategoryFuel, entity.UnitSystemImperial))
	assert.Equal(t, "kWh/100km", ConsumptionUnit(entity.CategoryElectricity, entity.UnitSystemMetric))
	assert.Equal(t, "kWh/100mi", ConsumptionUnit(entity.CategoryElectricity, entity.UnitSystemImperial))
	assert.Equal(t, "gal", QuantityUnit(entity.CategoryFuel, entity.UnitSystemImperial))
	assert.Equal(t, "kWh", QuantityUnit(entity.CategoryElectricity, entity.UnitSystemImperial))
	assert.Equal(t, "mi", DistanceUnit(entity.UnitSystemImperial))
}

func TestPresentPriceAndCostPerDistance(t *testing.T) {
	price := 1.5
	perGallon := PresentPricePerUnit(entity.CategoryFuel, &price, entity.UnitSystemImperial)
	require.NotNil(t, perGallon)
	assert.InDelta(t, 1.5*LitersPerGallon, *perGallon, 1e-9)

	kwhPrice := 0.3
	assert.Equal(t, &kwhPrice, PresentPricePerUnit(entity.CategoryElectricity, &kwhPrice, entity.UnitSystemImperial))

	per100 := 10.0
	perMi := PresentCostPerDistance(&per100, entity.UnitSystemImperial)
	require.NotNil(t, perMi)
	assert.InDelta(t, 16.0934, *perMi, 1e-9)
}
