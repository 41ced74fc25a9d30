package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/diillson/fuellog-go/internal/domain/entity"
	"github.com/diillson/fuellog-go/internal/shared/types"
)

type keyLocalizer struct{}

func (keyLocalizer) T(key string, params map[string]string) string {
	if len(params) == 0 {
		return key
	}
	parts := []string{key}
	for k, v := range params {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, " ")
}

func (keyLocalizer) FormatNumber(v float64, decimals int) string {
	return fmt.Sprintf("%.*f", decimals, v)
}

func (keyLocalizer) Locale() string { return "en" }

type fakeConsole struct {
	infos    []string
	warnings []string
	errors   []string
	success  []string
	printed  []string
	bars     map[string][]types.ConsumptionBar
	tables   []*fakeTable
}

func newFakeConsole() *fakeConsole {
	return &fakeConsole{bars: map[string][]types.ConsumptionBar{}}
}

func (c *fakeConsole) Print(a ...interface{})                 { c.printed = append(c.printed, fmt.Sprint(a...)) }
func (c *fakeConsole) Printf(format string, a ...interface{}) { c.Print(fmt.Sprintf(format, a...)) }
func (c *fakeConsole) Println(a ...interface{})               { c.Print(fmt.Sprint(a...)) }
func (c *fakeConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.success = append(c.success, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) Status(string) types.StatusHandle           { return noopHandle{} }
func (c *fakeConsole) ProgressWithTotal(int) types.ProgressHandle { return noopHandle{} }
func (c *fakeConsole) DisplayConsumptionBars(title string, points []types.ConsumptionBar) {
	c.bars[title] = points
}
func (c *fakeConsole) CreateTable() types.TableInterface {
	t := &fakeTable{}
	c.tables = append(c.tables, t)
	return t
}

type noopHandle struct{}

func (noopHandle) Update(string) {}
func (noopHandle) Increment()    {}
func (noopHandle) Stop()         {}

type fakeTable struct {
	columns []string
	rows    [][]string
}

func (t *fakeTable) AddColumn(name string, _ ...interface{}) { t.columns = append(t.columns, name) }
func (t *fakeTable) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = fmt.Sprint(c)
	}
	t.rows = append(t.rows, row)
}
func (t *fakeTable) Render() string { return fmt.Sprint(t.rows) }

type fakeSource struct {
	vehicle  entity.Vehicle
	fillings []entity.FillingEvent
	charging []entity.ChargingEvent
}

func (s *fakeSource) GetVehicle(_ context.Context, id string) (entity.Vehicle, error) {
	if id != "" && id != s.vehicle.ID {
		return entity.Vehicle{}, types.ErrVehicleNotFound
	}
	return s.vehicle, nil
}
func (s *fakeSource) ListVehicles(context.Context) ([]entity.Vehicle, error) {
	return []entity.Vehicle{s.vehicle}, nil
}
func (s *fakeSource) GetFillingEvents(context.Context, string) ([]entity.FillingEvent, error) {
	return s.fillings, nil
}
func (s *fakeSource) GetChargingEvents(context.Context, string) ([]entity.ChargingEvent, error) {
	return s.charging, nil
}

type fakeStore struct {
	fakeSource
	saved bool
}

func (s *fakeStore) SaveVehicle(_ context.Context, v entity.Vehicle) error {
	s.vehicle = v
	s.saved = true
	return nil
}
func (s *fakeStore) SaveFillingEvents(_ context.Context, _ string, events []entity.FillingEvent) (int, error) {
	s.fillings = append(s.fillings, events...)
	return len(events), nil
}
func (s *fakeStore) SaveChargingEvents(_ context.Context, _ string, events []entity.ChargingEvent) (int, error) {
	s.charging = append(s.charging, events...)
	return len(events), nil
}

type fakeExport struct {
	mu      sync.Mutex
	formats []string
	fail    map[string]error
	bundles []entity.ReportBundle
}

func (e *fakeExport) record(format string, b entity.ReportBundle) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.fail[format]; err != nil {
		return "", err
	}
	e.formats = append(e.formats, format)
	e.bundles = append(e.bundles, b)
	return "/tmp/report." + format, nil
}

func (e *fakeExport) ExportToCSV(b entity.ReportBundle, _, _ string) (string, error) {
	return e.record("csv", b)
}
func (e *fakeExport) ExportToHTML(b entity.ReportBundle, _, _ string) (string, error) {
	return e.record("html", b)
}
func (e *fakeExport) ExportToPDF(b entity.ReportBundle, _, _ string) (string, error) {
	return e.record("pdf", b)
}
func (e *fakeExport) ExportToXLSX(b entity.ReportBundle, _, _ string) (string, error) {
	return e.record("xlsx", b)
}
func (e *fakeExport) ExportToJSON(b entity.ReportBundle, _, _ string) (string, error) {
	return e.record("json", b)
}

type fakeUpload struct {
	uploaded []string
}

func (u *fakeUpload) CallerAccount(context.Context) (string, error) { return "123456789012", nil }
func (u *fakeUpload) Upload(_ context.Context, p string) (string, error) {
	u.uploaded = append(u.uploaded, p)
	return "s3://bucket/" + p, nil
}
