package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/diillson/fuellog-go/internal/domain/analytics"
	"github.com/diillson/fuellog-go/internal/domain/entity"
	"github.com/diillson/fuellog-go/internal/domain/repository"
	"github.com/diillson/fuellog-go/internal/shared/types"
)

// ReportRequest descreve um relatório: qual veículo, como calcular e para onde exportar.
type ReportRequest struct {
	VehicleID   string
	Preferences entity.Preferences
	Bounds      analytics.PlausibilityBounds
	DatePolicy  analytics.DatePolicy
	DateStyle   analytics.DateStyle
	ReportName  string
	ReportTypes []string
	Dir         string
	Upload      bool
}

// ReportUseCase handles loading, computing, displaying and exporting a vehicle report.
type ReportUseCase struct {
	exportRepo repository.ExportRepository
	uploadRepo repository.UploadRepository
	console    types.ConsoleInterface
	localizer  types.Localizer
	log        zerolog.Logger
	now        func() time.Time
}

// NewReportUseCase creates a new report use case. uploadRepo may be nil.
func NewReportUseCase(
	exportRepo repository.ExportRepository,
	uploadRepo repository.UploadRepository,
	console types.ConsoleInterface,
	localizer types.Localizer,
	log zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		exportRepo: exportRepo,
		uploadRepo: uploadRepo,
		console:    console,
		localizer:  localizer,
		log:        log,
		now:        time.Now,
	}
}

// BuildReport loads the events of one vehicle from source, normalizes them and
// computes the statistics. The returned bundle is what both the console and
// every export consume.
func (uc *ReportUseCase) BuildReport(ctx context.Context, source repository.EventRepository, req ReportRequest) (entity.ReportBundle, error) {
	vehicle, err := source.GetVehicle(ctx, req.VehicleID)
	if err != nil {
		return entity.ReportBundle{}, err
	}
	fillings, err := source.GetFillingEvents(ctx, vehicle.ID)
	if err != nil {
		return entity.ReportBundle{}, err
	}
	charging, err := source.GetChargingEvents(ctx, vehicle.ID)
	if err != nil {
		return entity.ReportBundle{}, err
	}
	if len(fillings) == 0 && len(charging) == 0 {
		return entity.ReportBundle{}, fmt.Errorf("%w: %s", types.ErrNoEvents, vehicle.ID)
	}

	fuel, fuelDiags, err := analytics.NormalizeFillings(fillings, req.DatePolicy)
	if err != nil {
		return entity.ReportBundle{}, err
	}
	elec, elecDiags, err := analytics.NormalizeCharging(charging, req.DatePolicy)
	if err != nil {
		return entity.ReportBundle{}, err
	}

	stats := analytics.ComputeStatistics(vehicle, fuel, elec, analytics.Options{
		Bounds:    req.Bounds,
		DateStyle: req.DateStyle,
		Now:       entity.MillisOf(uc.now()),
	})
	stats.Diagnostics = append(append(fuelDiags, elecDiags...), stats.Diagnostics...)

	for _, d := range stats.Diagnostics {
		ev := uc.log.Warn().
			Str("event", d.EventID).
			Str("category", string(d.Category)).
			Str("reason", string(d.Reason)).
			Str("related", d.RelatedEventID).
			Str("detail", d.Detail)
		if d.Value != nil {
			ev = ev.Float64("value", *d.Value)
		}
		ev.Msg("record skipped or flagged")
	}

	bundle := entity.ReportBundle{
		Vehicle:     vehicle,
		Statistics:  stats,
		Preferences: req.Preferences.Normalized(),
	}
	if stats.Fuel != nil {
		bundle.Fillings = fuel
	}
	if stats.Electricity != nil {
		bundle.Charging = elec
	}
	return bundle, nil
}

// RunReport é o fluxo completo do comando report.
func (uc *ReportUseCase) RunReport(ctx context.Context, source repository.EventRepository, req ReportRequest) error {
	status := uc.console.Status("Loading events...")
	bundle, err := uc.BuildReport(ctx, source, req)
	status.Stop()
	if err != nil {
		return err
	}

	uc.DisplayReport(bundle)

	if req.ReportName == "" || len(req.ReportTypes) == 0 {
		return nil
	}
	paths := uc.exportReports(ctx, bundle, req)

	if req.Upload && uc.uploadRepo != nil && len(paths) > 0 {
		uc.uploadReports(ctx, paths)
	}
	return nil
}

type exportResult struct {
	reportType string
	path       string
	err        error
}

// exportReports writes every requested format concurrently. A failing format
// is reported and does not stop the others.
func (uc *ReportUseCase) exportReports(ctx context.Context, bundle entity.ReportBundle, req ReportRequest) []string {
	results := make([]exportResult, len(req.ReportTypes))

	g, _ := errgroup.WithContext(ctx)
	for i, reportType := range req.ReportTypes {
		i, reportType := i, strings.ToLower(strings.TrimSpace(reportType))
		g.Go(func() error {
			path, err := uc.export(bundle, reportType, req.ReportName, req.Dir)
			results[i] = exportResult{reportType: reportType, path: path, err: err}
			return nil
		})
	}
	_ = g.Wait()

	bar := uc.console.ProgressWithTotal(len(results))
	defer bar.Stop()

	var paths []string
	for _, r := range results {
		bar.Increment()
		if r.err != nil {
			uc.console.LogError("Failed to export to %s: %s", strings.ToUpper(r.reportType), r.err)
			continue
		}
		uc.console.LogSuccess("Successfully exported to %s: %s", strings.ToUpper(r.reportType), r.path)
		paths = append(paths, r.path)
	}
	return paths
}

func (uc *ReportUseCase) export(bundle entity.ReportBundle, reportType, name, dir string) (string, error) {
	switch reportType {
	case "csv":
		return uc.exportRepo.ExportToCSV(bundle, name, dir)
	case "html":
		return uc.exportRepo.ExportToHTML(bundle, name, dir)
	case "pdf":
		return uc.exportRepo.ExportToPDF(bundle, name, dir)
	case "xlsx":
		return uc.exportRepo.ExportToXLSX(bundle, name, dir)
	case "json":
		return uc.exportRepo.ExportToJSON(bundle, name, dir)
	}
	return "", fmt.Errorf("%w: %s", types.ErrUnsupportedReportType, reportType)
}

func (uc *ReportUseCase) uploadReports(ctx context.Context, paths []string) {
	account, err := uc.uploadRepo.CallerAccount(ctx)
	if err != nil {
		uc.console.LogError("Failed to resolve AWS account for upload: %s", err)
		return
	}
	uc.console.LogInfo("Uploading %d report(s) with AWS account %s", len(paths), account)

	for _, p := range paths {
		uri, err := uc.uploadRepo.Upload(ctx, p)
		if err != nil {
			uc.console.LogError("Failed to upload %s: %s", p, err)
			continue
		}
		uc.console.LogSuccess("Uploaded %s", uri)
	}
}

// DisplayReport prints the statistics table, the consumption bars and the
// recency of each stream.
func (uc *ReportUseCase) DisplayReport(bundle entity.ReportBundle) {
	t := uc.localizer
	prefs := bundle.Preferences.Normalized()
	us := prefs.UnitSystem
	currency := analytics.CurrencySymbol(prefs.Currency)
	none := t.T("value.none", nil)

	num := func(v *float64, decimals int) string {
		if v == nil {
			return none
		}
		return t.FormatNumber(*v, decimals)
	}

	uc.console.Println(pterm.FgLightCyan.Sprint(t.T("report.title", map[string]string{"vehicle": bundle.Vehicle.DisplayName()})))

	table := uc.console.CreateTable()
	table.AddColumn(t.T("column.stream", nil))
	table.AddColumn(t.T("stat.event_count", nil))
	table.AddColumn(t.T("stat.average_consumption", nil))
	table.AddColumn(t.T("stat.average_price", nil))
	table.AddColumn(t.T("stat.total_cost", nil))
	table.AddColumn(t.T("stat.cost_per_distance", map[string]string{"unit": analytics.DistanceUnit(us)}))
	table.AddColumn(t.T("stat.total_distance", nil))
	table.AddColumn(t.T("stat.average_days", nil))

	for _, s := range []*entity.StreamStatistics{bundle.Statistics.Fuel, bundle.Statistics.Electricity} {
		if s == nil {
			continue
		}
		qtyUnit := analytics.QuantityUnit(s.Category, us)
		table.AddRow(
			pterm.FgMagenta.Sprint(t.T("stream."+string(s.Category), nil)),
			humanize.Comma(int64(s.EventCount)),
			fmt.Sprintf("%s %s", num(analytics.PresentConsumption(s.Category, s.AverageConsumption, us), 2), analytics.ConsumptionUnit(s.Category, us)),
			fmt.Sprintf("%s %s/%s", num(analytics.PresentPricePerUnit(s.Category, s.AveragePricePerUnit, us), 3), currency, qtyUnit),
			pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprintf("%s %s", t.FormatNumber(s.TotalCost, 2), currency),
			fmt.Sprintf("%s %s", num(analytics.PresentCostPerDistance(s.CostPer100Km, us), 2), currency),
			fmt.Sprintf("%s %s", num(analytics.PresentDistance(s.TotalDistanceKm, us), 0), analytics.DistanceUnit(us)),
			num(s.AverageDaysBetween, 1),
		)
	}
	uc.console.Print(table.Render())

	uc.console.LogInfo("%s: %s %s", t.T("stat.grand_total", nil), t.FormatNumber(bundle.Statistics.TotalCost, 2), currency)

	now := bundle.Statistics.ComputedAt.Time()
	for _, s := range []*entity.StreamStatistics{bundle.Statistics.Fuel, bundle.Statistics.Electricity} {
		if s == nil || s.LastEventAt == nil {
			continue
		}
		uc.console.LogInfo("%s", t.T("console.last_event", map[string]string{
			"category": strings.ToLower(t.T("stream."+string(s.Category), nil)),
			"ago":      humanize.RelTime(s.LastEventAt.Time(), now, "ago", "from now"),
		}))
	}

	for _, c := range []entity.Category{entity.CategoryFuel, entity.CategoryElectricity} {
		points := bundle.Statistics.Series.Points(c)
		if len(points) == 0 {
			continue
		}
		bars := make([]types.ConsumptionBar, len(points))
		for i, p := range points {
			v := p.Value
			if shown := analytics.PresentConsumption(c, &v, us); shown != nil {
				v = *shown
			}
			bars[i] = types.ConsumptionBar{
				Label: fmt.Sprintf("%s  %s %s", p.DateLabel, humanize.Comma(int64(displayOdometer(p.OdometerKm, us))), analytics.DistanceUnit(us)),
				Value: v,
				Unit:  analytics.ConsumptionUnit(c, us),
			}
		}
		title := fmt.Sprintf("%s: %s", t.T("section.chart", nil), t.T("stream."+string(c), nil))
		uc.console.DisplayConsumptionBars(title, bars)
	}

	if n := len(bundle.Statistics.Diagnostics); n > 0 {
		uc.console.LogWarning("%s: %d", t.T("section.diagnostics", nil), n)
	}
}

func displayOdometer(km float64, us entity.UnitSystem) float64 {
	if us == entity.UnitSystemImperial {
		return analytics.KmToMiles(km)
	}
	return km
}

// ListVehicles exibe os veículos disponíveis na fonte de eventos.
func (uc *ReportUseCase) ListVehicles(ctx context.Context, source repository.EventRepository) ([]entity.Vehicle, error) {
	vehicles, err := source.ListVehicles(ctx)
	if err != nil {
		return nil, err
	}
	if len(vehicles) == 0 {
		uc.console.LogWarning("No vehicles stored yet. Use the import command to add one.")
		return vehicles, nil
	}

	t := uc.localizer
	table := uc.console.CreateTable()
	table.AddColumn(t.T("field.id", nil))
	table.AddColumn(t.T("field.name", nil))
	table.AddColumn(t.T("field.type", nil))
	table.AddColumn(t.T("field.year", nil))
	for _, v := range vehicles {
		year := ""
		if v.Year > 0 {
			year = fmt.Sprint(v.Year)
		}
		table.AddRow(v.ID, v.DisplayName(), string(v.Type), year)
	}
	uc.console.Print(table.Render())
	return vehicles, nil
}

// IsDataError reports whether err comes from the data rather than the environment.
func IsDataError(err error) bool {
	return errors.Is(err, types.ErrNoEvents) ||
		errors.Is(err, types.ErrVehicleNotFound) ||
		errors.Is(err, analytics.ErrInvalidDate)
}
