package types

import "errors"

var (
	ErrVehicleNotFound       = errors.New("vehicle not found in the event store")
	ErrNoEvents              = errors.New("no filling or charging events recorded for this vehicle")
	ErrUnsupportedReportType = errors.New("unsupported report type")
	ErrNoDataSource          = errors.New("either --vehicle or --dataset must be provided")
)
