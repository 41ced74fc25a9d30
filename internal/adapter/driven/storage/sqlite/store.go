package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/diillson/fuellog-go/internal/domain/entity"
	"github.com/diillson/fuellog-go/internal/domain/repository"
	"github.com/diillson/fuellog-go/internal/shared/types"
)

// Store is the local event store. Raw dates are kept in their original shape
// (JSON-encoded RawDate) so normalization happens at read time, as for any
// other data source.
type Store struct {
	conn *sql.DB
	log  zerolog.Logger
}

var _ repository.EventStore = (*Store)(nil)

// New opens the database at dbPath and initializes the schema.
func New(dbPath string, log zerolog.Logger) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory '%s': %w", dir, err)
		}
	}
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{conn: conn, log: log.With().Str("component", "sqlite").Logger()}
	if err := s.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	s.log.Debug().Str("path", dbPath).Msg("event store opened")
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) initSchema() error {
	schema := `
	PRAGMA foreign_keys = ON;
	CREATE TABLE IF NOT EXISTS vehicles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		make TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		year INTEGER NOT NULL DEFAULT 0,
		vehicle_type TEXT NOT NULL DEFAULT '',
		fuel_tank_size_l REAL,
		battery_capacity_kwh REAL
	);
	CREATE TABLE IF NOT EXISTS filling_events (
		id TEXT NOT NULL,
		vehicle_id TEXT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		odometer_km REAL NOT NULL,
		liters REAL NOT NULL,
		cost REAL NOT NULL,
		raw_date TEXT NOT NULL,
		PRIMARY KEY (vehicle_id, id)
	);
	CREATE TABLE IF NOT EXISTS charging_events (
		id TEXT NOT NULL,
		vehicle_id TEXT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		odometer_km REAL NOT NULL,
		energy_added_kwh REAL NOT NULL,
		cost REAL NOT NULL,
		raw_date TEXT NOT NULL,
		location_type TEXT NOT NULL DEFAULT '',
		charger_type TEXT NOT NULL DEFAULT '',
		location_name TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (vehicle_id, id)
	);
	CREATE INDEX IF NOT EXISTS idx_filling_vehicle ON filling_events(vehicle_id);
	CREATE INDEX IF NOT EXISTS idx_charging_vehicle ON charging_events(vehicle_id);
	`
	_, err := s.conn.Exec(schema)
	return err
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// SaveVehicle inserts or updates a vehicle.
func (s *Store) SaveVehicle(ctx context.Context, v entity.Vehicle) error {
	query := `
	INSERT INTO vehicles (id, name, make, model, year, vehicle_type, fuel_tank_size_l, battery_capacity_kwh)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name, make = excluded.make, model = excluded.model, year = excluded.year,
		vehicle_type = excluded.vehicle_type, fuel_tank_size_l = excluded.fuel_tank_size_l,
		battery_capacity_kwh = excluded.battery_capacity_kwh
	`
	_, err := s.conn.ExecContext(ctx, query, v.ID, v.Name, v.Make, v.Model, v.Year, string(v.Type),
		nullFloat(v.FuelTankSizeL), nullFloat(v.BatteryCapacityKWh))
	if err != nil {
		return fmt.Errorf("saving vehicle: %w", err)
	}
	return nil
}

// GetVehicle retrieves one vehicle by id.
func (s *Store) GetVehicle(ctx context.Context, vehicleID string) (entity.Vehicle, error) {
	query := `
	SELECT id, name, make, model, year, vehicle_type, fuel_tank_size_l, battery_capacity_kwh
	FROM vehicles WHERE id = ?
	`
	v, err := scanVehicle(s.conn.QueryRowContext(ctx, query, vehicleID))
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Vehicle{}, fmt.Errorf("%w: %s", types.ErrVehicleNotFound, vehicleID)
	}
	if err != nil {
		return entity.Vehicle{}, fmt.Errorf("querying vehicle: %w", err)
	}
	return v, nil
}

// ListVehicles returns every stored vehicle ordered by id.
func (s *Store) ListVehicles(ctx context.Context) ([]entity.Vehicle, error) {
	rows, err := s.conn.QueryContext(ctx, `
	SELECT id, name, make, model, year, vehicle_type, fuel_tank_size_l, battery_capacity_kwh
	FROM vehicles ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []entity.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row scanner) (entity.Vehicle, error) {
	var v entity.Vehicle
	var vt string
	var tank, battery sql.NullFloat64
	if err := row.Scan(&v.ID, &v.Name, &v.Make, &v.Model, &v.Year, &vt, &tank, &battery); err != nil {
		return entity.Vehicle{}, err
	}
	v.Type = entity.VehicleType(vt)
	v.FuelTankSizeL = floatPtr(tank)
	v.BatteryCapacityKWh = floatPtr(battery)
	return v, nil
}

// SaveFillingEvents upserts the events of one vehicle in a single transaction
// and returns how many rows were written. Event ids are scoped to the vehicle;
// an existing row keeps its position in the insertion order.
func (s *Store) SaveFillingEvents(ctx context.Context, vehicleID string, events []entity.FillingEvent) (int, error) {
	return s.inTx(ctx, `
	INSERT INTO filling_events (id, vehicle_id, odometer_km, liters, cost, raw_date)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(vehicle_id, id) DO UPDATE SET
		odometer_km = excluded.odometer_km,
		liters = excluded.liters,
		cost = excluded.cost,
		raw_date = excluded.raw_date
	`, len(events), func(stmt *sql.Stmt, i int) error {
		e := events[i]
		raw, err := json.Marshal(e.Date)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx, e.ID, vehicleID, e.OdometerKm, e.Liters, e.Cost, string(raw))
		return err
	})
}

// SaveChargingEvents é o equivalente de SaveFillingEvents para sessões de recarga.
func (s *Store) SaveChargingEvents(ctx context.Context, vehicleID string, events []entity.ChargingEvent) (int, error) {
	return s.inTx(ctx, `
	INSERT INTO charging_events
		(id, vehicle_id, odometer_km, energy_added_kwh, cost, raw_date, location_type, charger_type, location_name)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(vehicle_id, id) DO UPDATE SET
		odometer_km = excluded.odometer_km,
		energy_added_kwh = excluded.energy_added_kwh,
		cost = excluded.cost,
		raw_date = excluded.raw_date,
		location_type = excluded.location_type,
		charger_type = excluded.charger_type,
		location_name = excluded.location_name
	`, len(events), func(stmt *sql.Stmt, i int) error {
		e := events[i]
		raw, err := json.Marshal(e.Date)
		if err != nil {
			return err
		}
		var loc entity.ChargerLocation
		if e.Location != nil {
			loc = *e.Location
		}
		_, err = stmt.ExecContext(ctx, e.ID, vehicleID, e.OdometerKm, e.EnergyAddedKWh, e.Cost, string(raw),
			loc.Type, loc.ChargerType, loc.Name)
		return err
	})
}

func (s *Store) inTx(ctx context.Context, query string, n int, exec func(stmt *sql.Stmt, i int) error) (int, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if err := exec(stmt, i); err != nil {
			return 0, fmt.Errorf("inserting event: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing events: %w", err)
	}
	return n, nil
}

// GetFillingEvents returns the filling events of one vehicle in insertion order.
func (s *Store) GetFillingEvents(ctx context.Context, vehicleID string) ([]entity.FillingEvent, error) {
	rows, err := s.conn.QueryContext(ctx, `
	SELECT id, odometer_km, liters, cost, raw_date FROM filling_events
	WHERE vehicle_id = ? ORDER BY rowid
	`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("querying filling events: %w", err)
	}
	defer rows.Close()

	var events []entity.FillingEvent
	for rows.Next() {
		var e entity.FillingEvent
		var raw string
		if err := rows.Scan(&e.ID, &e.OdometerKm, &e.Liters, &e.Cost, &raw); err != nil {
			return nil, fmt.Errorf("scanning filling event: %w", err)
		}
		e.Date = s.decodeDate(e.ID, raw)
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetChargingEvents returns the charging events of one vehicle in insertion order.
func (s *Store) GetChargingEvents(ctx context.Context, vehicleID string) ([]entity.ChargingEvent, error) {
	rows, err := s.conn.QueryContext(ctx, `
	SELECT id, odometer_km, energy_added_kwh, cost, raw_date, location_type, charger_type, location_name
	FROM charging_events WHERE vehicle_id = ? ORDER BY rowid
	`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("querying charging events: %w", err)
	}
	defer rows.Close()

	var events []entity.ChargingEvent
	for rows.Next() {
		var e entity.ChargingEvent
		var raw string
		var loc entity.ChargerLocation
		if err := rows.Scan(&e.ID, &e.OdometerKm, &e.EnergyAddedKWh, &e.Cost, &raw,
			&loc.Type, &loc.ChargerType, &loc.Name); err != nil {
			return nil, fmt.Errorf("scanning charging event: %w", err)
		}
		e.Date = s.decodeDate(e.ID, raw)
		if loc != (entity.ChargerLocation{}) {
			e.Location = &loc
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// decodeDate keeps an undecodable column as an unrecognized date so the
// normalizer reports it instead of the whole query failing.
func (s *Store) decodeDate(id, raw string) entity.RawDate {
	var d entity.RawDate
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		s.log.Warn().Str("event", id).Err(err).Msg("stored date is not valid JSON")
		return entity.RawDate{Kind: entity.DateKindUnrecognized, Raw: raw}
	}
	return d
}
