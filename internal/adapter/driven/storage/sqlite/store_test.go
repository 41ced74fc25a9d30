package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/fuellog-go/internal/domain/analytics"
	"github.com/diillson/fuellog-go/internal/domain/entity"
	"github.com/diillson/fuellog-go/internal/shared/types"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "fuellog.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_VehicleRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	tank := 45.0
	v := entity.Vehicle{ID: "car-1", Name: "Golf", Make: "VW", Year: 2019, Type: entity.VehicleTypeICE, FuelTankSizeL: &tank}

	require.NoError(t, s.SaveVehicle(ctx, v))
	got, err := s.GetVehicle(ctx, "car-1")
	require.NoError(t, err)
	assert.Equal(t, v, got)

	v.Name = "Golf Variant"
	require.NoError(t, s.SaveVehicle(ctx, v))
	vehicles, err := s.ListVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "Golf Variant", vehicles[0].Name)
	assert.Nil(t, vehicles[0].BatteryCapacityKWh)
}

func TestStore_VehicleNotFound(t *testing.T) {
	_, err := newStore(t).GetVehicle(context.Background(), "nope")
	assert.ErrorIs(t, err, types.ErrVehicleNotFound)
}

func TestStore_EventsKeepRawDateShapes(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveVehicle(ctx, entity.Vehicle{ID: "car-1", Type: entity.VehicleTypePHEV}))

	fillings := []entity.FillingEvent{
		{ID: "f1", OdometerKm: 1000, Liters: 40, Cost: 64, Date: entity.DateFromISO("2024-03-15T10:00:00Z")},
		{ID: "f2", OdometerKm: 1500, Liters: 35, Cost: 56, Date: entity.DateFromSeconds(1710979200, 500000000)},
	}
	n, err := s.SaveFillingEvents(ctx, "car-1", fillings)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	charging := []entity.ChargingEvent{
		{ID: "e1", OdometerKm: 1200, EnergyAddedKWh: 20, Cost: 6,
			Date:     entity.DateFromTime(time.Date(2024, 3, 18, 8, 0, 0, 0, time.UTC)),
			Location: &entity.ChargerLocation{Type: "public", ChargerType: "DC", Name: "Ionity"}},
		{ID: "e2", OdometerKm: 1300, EnergyAddedKWh: 10, Cost: 3, Date: entity.DateFromISO("2024-03-19")},
	}
	_, err = s.SaveChargingEvents(ctx, "car-1", charging)
	require.NoError(t, err)

	gotF, err := s.GetFillingEvents(ctx, "car-1")
	require.NoError(t, err)
	require.Len(t, gotF, 2)
	assert.Equal(t, entity.DateKindISO, gotF[0].Date.Kind)
	assert.Equal(t, entity.DateKindSeconds, gotF[1].Date.Kind)
	assert.Equal(t, int64(500000000), gotF[1].Date.Nanoseconds)

	gotC, err := s.GetChargingEvents(ctx, "car-1")
	require.NoError(t, err)
	require.Len(t, gotC, 2)
	require.NotNil(t, gotC[0].Location)
	assert.Equal(t, "Ionity", gotC[0].Location.Name)
	assert.Nil(t, gotC[1].Location)

	ms, err := analytics.ToDate(gotC[0].Date)
	require.NoError(t, err)
	assert.Equal(t, entity.MillisOf(time.Date(2024, 3, 18, 8, 0, 0, 0, time.UTC)), ms)
}

func TestStore_ReplaceByID(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveVehicle(ctx, entity.Vehicle{ID: "car-1"}))

	event := entity.FillingEvent{ID: "f1", OdometerKm: 1000, Liters: 40, Cost: 64, Date: entity.DateFromISO("2024-03-15")}
	_, err := s.SaveFillingEvents(ctx, "car-1", []entity.FillingEvent{event})
	require.NoError(t, err)
	event.Cost = 70
	_, err = s.SaveFillingEvents(ctx, "car-1", []entity.FillingEvent{event})
	require.NoError(t, err)

	got, err := s.GetFillingEvents(ctx, "car-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 70.0, got[0].Cost)
}

func TestStore_UndecodableDateBecomesUnrecognized(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveVehicle(ctx, entity.Vehicle{ID: "car-1"}))
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO filling_events (id, vehicle_id, odometer_km, liters, cost, raw_date) VALUES ('bad', 'car-1', 1, 1, 1, 'not json')`)
	require.NoError(t, err)

	got, err := s.GetFillingEvents(ctx, "car-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entity.DateKindUnrecognized, got[0].Date.Kind)

	_, err = analytics.ToDate(got[0].Date)
	assert.ErrorIs(t, err, analytics.ErrInvalidDate)
}

func TestStore_EventIDsAreScopedToTheVehicle(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveVehicle(ctx, entity.Vehicle{ID: "car-a"}))
	require.NoError(t, s.SaveVehicle(ctx, entity.Vehicle{ID: "car-b"}))

	date := entity.DateFromISO("2024-03-15")
	_, err := s.SaveFillingEvents(ctx, "car-a", []entity.FillingEvent{{ID: "f1", OdometerKm: 1000, Liters: 40, Cost: 64, Date: date}})
	require.NoError(t, err)
	_, err = s.SaveFillingEvents(ctx, "car-b", []entity.FillingEvent{{ID: "f1", OdometerKm: 5000, Liters: 30, Cost: 50, Date: date}})
	require.NoError(t, err)
	_, err = s.SaveChargingEvents(ctx, "car-a", []entity.ChargingEvent{{ID: "e1", OdometerKm: 1100, EnergyAddedKWh: 10, Cost: 3, Date: date}})
	require.NoError(t, err)
	_, err = s.SaveChargingEvents(ctx, "car-b", []entity.ChargingEvent{{ID: "e1", OdometerKm: 5100, EnergyAddedKWh: 20, Cost: 6, Date: date}})
	require.NoError(t, err)

	a, err := s.GetFillingEvents(ctx, "car-a")
	require.NoError(t, err)
	b, err := s.GetFillingEvents(ctx, "car-b")
	require.NoError(t, err)
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, 64.0, a[0].Cost)
	assert.Equal(t, 50.0, b[0].Cost)

	ca, err := s.GetChargingEvents(ctx, "car-a")
	require.NoError(t, err)
	cb, err := s.GetChargingEvents(ctx, "car-b")
	require.NoError(t, err)
	require.Len(t, ca, 1)
	require.Len(t, cb, 1)
	assert.Equal(t, 1100.0, ca[0].OdometerKm)
	assert.Equal(t, 5100.0, cb[0].OdometerKm)
}

func TestStore_UpsertKeepsInsertionOrder(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveVehicle(ctx, entity.Vehicle{ID: "car-1"}))

	date := entity.DateFromISO("2024-03-15")
	events := []entity.FillingEvent{
		{ID: "f1", OdometerKm: 1000, Liters: 40, Cost: 64, Date: date},
		{ID: "f2", OdometerKm: 1500, Liters: 35, Cost: 56, Date: date},
	}
	_, err := s.SaveFillingEvents(ctx, "car-1", events)
	require.NoError(t, err)
	events[0].Cost = 66
	_, err = s.SaveFillingEvents(ctx, "car-1", events[:1])
	require.NoError(t, err)

	got, err := s.GetFillingEvents(ctx, "car-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "f1", got[0].ID)
	assert.Equal(t, 66.0, got[0].Cost)
	assert.Equal(t, "f2", got[1].ID)
}
