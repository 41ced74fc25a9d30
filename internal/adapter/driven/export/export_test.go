package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diillson/fuellog-go/internal/adapter/driven/i18n"
	"github.com/diillson/fuellog-go/internal/domain/analytics"
	"github.com/diillson/fuellog-go/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseDay = entity.EpochMillis(1710460800000)

func day(n int) entity.EpochMillis {
	return baseDay + entity.EpochMillis(n)*86400000
}

func phevBundle(t *testing.T) entity.ReportBundle {
	t.Helper()
	vehicle := entity.Vehicle{ID: "car-1", Name: "Outlander", Type: entity.VehicleTypePHEV}
	fuel := []entity.UsageRecord{
		{ID: "f1", Category: entity.CategoryFuel, OdometerKm: 1000, Quantity: 40, Cost: 64, Date: day(0)},
		{ID: "f2", Category: entity.CategoryFuel, OdometerKm: 1200, Quantity: 13, Cost: 20.8, Date: day(10)},
		{ID: "f3", Category: entity.CategoryFuel, OdometerKm: 1400, Quantity: 12, Cost: 19.2, Date: day(20)},
	}
	charging := []entity.UsageRecord{
		{ID: "e1", Category: entity.CategoryElectricity, OdometerKm: 1100, Quantity: 10, Cost: 3, Date: day(5),
			Location: &entity.ChargerLocation{Type: "home", ChargerType: "AC"}},
		{ID: "e2", Category: entity.CategoryElectricity, OdometerKm: 1300, Quantity: 30, Cost: 9, Date: day(15)},
	}
	opts := analytics.Options{DateStyle: analytics.DateStyle{Locale: "en", Location: time.UTC}, Now: day(30)}
	return entity.ReportBundle{
		Vehicle:     vehicle,
		Fillings:    fuel,
		Charging:    charging,
		Statistics:  analytics.ComputeStatistics(vehicle, fuel, charging, opts),
		Preferences: entity.DefaultPreferences(),
	}
}

func newFormatter(t *testing.T, locale string) *Formatter {
	t.Helper()
	l, err := i18n.New(locale)
	require.NoError(t, err)
	return NewFormatter(l, analytics.DateStyle{Locale: locale, Location: time.UTC})
}

func readRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func findRow(rows [][]string, stream, metric string) []string {
	for _, row := range rows {
		if len(row) == 4 && row[0] == stream && row[1] == metric {
			return row
		}
	}
	return nil
}

func TestRenderDelimited_PeriodDecimalsUnderCommaLocale(t *testing.T) {
	f := newFormatter(t, "sl")
	bundle := phevBundle(t)

	data, err := f.RenderDelimited(bundle)
	require.NoError(t, err)
	rows := readRows(t, data)

	row := findRow(rows, "Gorivo", "Povprečna poraba")
	require.NotNil(t, row)
	assert.Equal(t, "6.25", row[2])
	assert.Equal(t, "L/100km", row[3])

	row = findRow(rows, "Elektrika", "Skupni strošek")
	require.NotNil(t, row)
	assert.Equal(t, "12.00", row[2])
}

func TestRenderDelimited_Sections(t *testing.T) {
	f := newFormatter(t, "en")
	data, err := f.RenderDelimited(phevBundle(t))
	require.NoError(t, err)
	rows := readRows(t, data)

	var titles []string
	for _, row := range rows {
		if len(row) == 1 && row[0] != "" {
			titles = append(titles, row[0])
		}
	}
	assert.Equal(t, []string{
		"Vehicle report: Outlander",
		"Vehicle information",
		"Summary statistics",
		"Fuel fillings",
		"Charging sessions",
	}, titles)

	grand := findRow(rows, "", "Total cost (all streams)")
	require.NotNil(t, grand)
	assert.Equal(t, "116.00", grand[2])
	assert.Equal(t, "€", grand[3])

	var charging []string
	for _, row := range rows {
		if len(row) > 0 && row[0] == "e1" {
			charging = row
		}
	}
	require.Len(t, charging, 8)
	assert.Equal(t, []string{"e1", "20/03/24", "1100", "10.00", "3.00", "home", "AC", ""}, charging)
}

func TestRenderDelimited_NullsUsePlaceholder(t *testing.T) {
	f := newFormatter(t, "en")
	vehicle := entity.Vehicle{ID: "v", Type: entity.VehicleTypeICE}
	fuel := []entity.UsageRecord{{ID: "only", Category: entity.CategoryFuel, OdometerKm: 100, Quantity: 30, Cost: 50, Date: day(0)}}
	bundle := entity.ReportBundle{
		Vehicle:     vehicle,
		Fillings:    fuel,
		Statistics:  analytics.ComputeStatistics(vehicle, fuel, nil, analytics.Options{Now: day(1)}),
		Preferences: entity.DefaultPreferences(),
	}

	data, err := f.RenderDelimited(bundle)
	require.NoError(t, err)
	row := findRow(readRows(t, data), "Fuel", "Average consumption")
	require.NotNil(t, row)
	assert.Equal(t, "—", row[2])
}

func TestRenderDelimited_Diagnostics(t *testing.T) {
	f := newFormatter(t, "en")
	bundle := phevBundle(t)
	rate, delta := 35.0, -20.0
	bundle.Statistics.Diagnostics = []entity.Diagnostic{
		{EventID: "f9", Category: entity.CategoryFuel, Reason: entity.ReasonImplausibleRate, RelatedEventID: "f8", Value: &rate},
		{EventID: "f7", Category: entity.CategoryFuel, Reason: entity.ReasonNonPositiveDelta, RelatedEventID: "f6", Value: &delta},
		{EventID: "e3", Category: entity.CategoryElectricity, Reason: entity.ReasonOdometerOutOfOrder, RelatedEventID: "e2"},
		{EventID: "bad", Category: entity.CategoryFuel, Reason: entity.ReasonInvalidDate, Detail: "yesterday"},
	}

	data, err := f.RenderDelimited(bundle)
	require.NoError(t, err)
	rows := readRows(t, data)
	assert.Contains(t, rows, []string{"f9", "Fuel", "Implausible consumption", "35.00 L/100km since f8"})
	assert.Contains(t, rows, []string{"f7", "Fuel", "Non-positive distance", "-20.0 km since f6"})
	assert.Contains(t, rows, []string{"e3", "Electricity", "Odometer out of chronological order", "Dated before e2 despite a higher odometer"})
	assert.Contains(t, rows, []string{"bad", "Fuel", "Invalid date", "Unreadable value yesterday"})
}

func TestDiagnosticDetail_Imperial(t *testing.T) {
	f := newFormatter(t, "en")
	rate := 6.5
	b := f.builder(entity.ReportBundle{Preferences: entity.Preferences{UnitSystem: entity.UnitSystemImperial}}, periodDecimals)

	got := b.diagnosticDetail(entity.Diagnostic{Category: entity.CategoryFuel, Reason: entity.ReasonImplausibleRate, RelatedEventID: "f1", Value: &rate})
	assert.Equal(t, "36.19 MPG since f1", got)
}

func TestRenderDelimited_Imperial(t *testing.T) {
	f := newFormatter(t, "en")
	bundle := phevBundle(t)
	bundle.Preferences = entity.Preferences{UnitSystem: entity.UnitSystemImperial, Currency: "USD"}

	data, err := f.RenderDelimited(bundle)
	require.NoError(t, err)
	row := findRow(readRows(t, data), "Fuel", "Average consumption")
	require.NotNil(t, row)
	assert.Equal(t, "MPG", row[3])
	assert.Equal(t, "37.63", row[2])
}

func TestScaleY(t *testing.T) {
	assert.InDelta(t, 100.0, ScaleY(0, 0, 10, 100), 1e-9)
	assert.InDelta(t, 0.0, ScaleY(10, 0, 10, 100), 1e-9)
	assert.InDelta(t, 50.0, ScaleY(5, 5, 5, 100), 1e-9)
}

func TestBuildChart_PaddingKeepsPointsInside(t *testing.T) {
	series := entity.Series{Fuel: []entity.ConsumptionPoint{
		{Value: 5, Category: entity.CategoryFuel, SequenceIndex: 0, DateLabel: "a"},
		{Value: 10, Category: entity.CategoryFuel, SequenceIndex: 1, DateLabel: "b"},
	}}
	size := ChartSize{Width: 200, Height: 120, Margin: 20}
	chart := BuildChart(series, entity.UnitSystemMetric, size, periodDecimals)

	require.Len(t, chart.Lines, 1)
	plotH := chart.Bottom - chart.Top
	pts := chart.Lines[0].Points
	// lo = 4.5, hi = 10.5
	assert.InDelta(t, chart.Top+plotH-(0.5/6)*plotH, pts[0].Y, 1e-9)
	assert.InDelta(t, chart.Top+plotH-(5.5/6)*plotH, pts[1].Y, 1e-9)
	assert.InDelta(t, chart.Left, pts[0].X, 1e-9)
	assert.InDelta(t, chart.Right, pts[1].X, 1e-9)

	require.Len(t, chart.YTicks, yTickCount)
	assert.Equal(t, "4.5", chart.YTicks[0].Label)
	assert.Equal(t, "10.5", chart.YTicks[yTickCount-1].Label)
	assert.Len(t, chart.XTicks, 2)
}

func TestBuildChart_FlatSeries(t *testing.T) {
	series := entity.Series{Electricity: []entity.ConsumptionPoint{
		{Value: 15, Category: entity.CategoryElectricity},
	}}
	chart := BuildChart(series, entity.UnitSystemMetric, DefaultChartSize, periodDecimals)

	require.Len(t, chart.Lines, 1)
	p := chart.Lines[0].Points[0]
	assert.InDelta(t, chart.Top+(chart.Bottom-chart.Top)/2, p.Y, 1e-9)
	assert.InDelta(t, chart.Left+(chart.Right-chart.Left)/2, p.X, 1e-9)
	assert.Equal(t, "13.5", chart.YTicks[0].Label)
}

func TestBuildChart_Empty(t *testing.T) {
	chart := BuildChart(entity.Series{}, entity.UnitSystemMetric, DefaultChartSize, periodDecimals)
	assert.True(t, chart.Empty())
}

func TestRenderDocument(t *testing.T) {
	f := newFormatter(t, "en")
	data, err := f.RenderDocument(phevBundle(t))
	require.NoError(t, err)
	doc := string(data)

	assert.Contains(t, doc, `<html lang="en">`)
	assert.Contains(t, doc, "<svg")
	assert.Equal(t, 2, strings.Count(doc, "<polyline"))
	assert.Equal(t, 3, strings.Count(doc, "<circle"))
	assert.Contains(t, doc, "Electricity (kWh/100km)")
	assert.Contains(t, doc, "Vehicle report: Outlander")
}

func TestRenderDocument_NoChartData(t *testing.T) {
	f := newFormatter(t, "en")
	vehicle := entity.Vehicle{ID: "v", Type: entity.VehicleTypeBEV}
	bundle := entity.ReportBundle{
		Vehicle:     vehicle,
		Statistics:  analytics.ComputeStatistics(vehicle, nil, nil, analytics.Options{}),
		Preferences: entity.DefaultPreferences(),
	}
	data, err := f.RenderDocument(bundle)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "<svg")
	assert.Contains(t, string(data), "Not enough plausible readings")
}

func TestRenderPDF(t *testing.T) {
	data, err := newFormatter(t, "en").RenderPDF(phevBundle(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderXLSX(t *testing.T) {
	data, err := newFormatter(t, "en").RenderXLSX(phevBundle(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestExportRepository_WritesTimestampedFiles(t *testing.T) {
	dir := t.TempDir()
	repo := &ExportRepositoryImpl{
		formatter: newFormatter(t, "en"),
		now:       func() time.Time { return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC) },
	}
	bundle := phevBundle(t)

	path, err := repo.ExportToCSV(bundle, "report", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report_20240315_093000.csv"), path)

	path, err = repo.ExportToJSON(bundle, "report", dir)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"vehicle_id": "car-1"`)

	for _, export := range []func(entity.ReportBundle, string, string) (string, error){
		repo.ExportToHTML, repo.ExportToPDF, repo.ExportToXLSX,
	} {
		path, err := export(bundle, "report", dir)
		require.NoError(t, err)
		assert.FileExists(t, path)
	}
}

func TestAbsRange(t *testing.T) {
	got, err := absRange("Series", 2, 2, 9)
	require.NoError(t, err)
	assert.Equal(t, "Series!$B$2:$B$9", got)

	got, err = absRange("Series", 3, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Series!$C$1", got)

	_, err = absRange("Series", 0, 1, 2)
	assert.Error(t, err)
}
