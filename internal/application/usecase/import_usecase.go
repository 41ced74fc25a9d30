package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/diillson/fuellog-go/internal/domain/entity"
	"github.com/diillson/fuellog-go/internal/domain/repository"
	"github.com/diillson/fuellog-go/internal/shared/types"
)

// ImportUseCase copies a vehicle and its events from any source into the event store.
type ImportUseCase struct {
	store   repository.EventStore
	console types.ConsoleInterface
	log     zerolog.Logger
}

// NewImportUseCase creates a new import use case.
func NewImportUseCase(store repository.EventStore, console types.ConsoleInterface, log zerolog.Logger) *ImportUseCase {
	return &ImportUseCase{store: store, console: console, log: log}
}

// ImportResult resume o que foi gravado.
type ImportResult struct {
	Vehicle  entity.Vehicle
	Fillings int
	Charging int
}

// Import reads vehicleID from source (empty selects the source's only vehicle)
// and upserts it with all its events.
func (uc *ImportUseCase) Import(ctx context.Context, source repository.EventRepository, vehicleID string) (ImportResult, error) {
	vehicle, err := source.GetVehicle(ctx, vehicleID)
	if err != nil {
		return ImportResult{}, err
	}
	fillings, err := source.GetFillingEvents(ctx, vehicle.ID)
	if err != nil {
		return ImportResult{}, err
	}
	charging, err := source.GetChargingEvents(ctx, vehicle.ID)
	if err != nil {
		return ImportResult{}, err
	}

	if err := uc.store.SaveVehicle(ctx, vehicle); err != nil {
		return ImportResult{}, err
	}
	nf, err := uc.store.SaveFillingEvents(ctx, vehicle.ID, fillings)
	if err != nil {
		return ImportResult{}, fmt.Errorf("importing fillings: %w", err)
	}
	nc, err := uc.store.SaveChargingEvents(ctx, vehicle.ID, charging)
	if err != nil {
		return ImportResult{}, fmt.Errorf("importing charging sessions: %w", err)
	}

	uc.log.Info().Str("vehicle", vehicle.ID).Int("fillings", nf).Int("charging", nc).Msg("dataset imported")
	uc.console.LogSuccess("Imported %s (%s): %d filling(s), %d charging session(s)", vehicle.DisplayName(), vehicle.ID, nf, nc)

	return ImportResult{Vehicle: vehicle, Fillings: nf, Charging: nc}, nil
}
