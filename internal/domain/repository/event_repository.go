package repository

import (
	"context"

	"github.com/diillson/fuellog-go/internal/domain/entity"
)

// EventRepository supplies the raw events of one vehicle. Returned lists are
// scoped to that vehicle and hold no duplicate ids.
type EventRepository interface {
	GetVehicle(ctx context.Context, vehicleID string) (entity.Vehicle, error)
	ListVehicles(ctx context.Context) ([]entity.Vehicle, error)
	GetFillingEvents(ctx context.Context, vehicleID string) ([]entity.FillingEvent, error)
	GetChargingEvents(ctx context.Context, vehicleID string) ([]entity.ChargingEvent, error)
}

// EventStore é uma fonte de eventos que também aceita escrita (importação).
type EventStore interface {
	EventRepository

	SaveVehicle(ctx context.Context, vehicle entity.Vehicle) error
	SaveFillingEvents(ctx context.Context, vehicleID string, events []entity.FillingEvent) (int, error)
	SaveChargingEvents(ctx context.Context, vehicleID string, events []entity.ChargingEvent) (int, error)
}
