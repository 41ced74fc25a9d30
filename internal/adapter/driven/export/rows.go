package export

import (
	"strconv"

	"github.com/diillson/fuellog-go/internal/domain/analytics"
	"github.com/diillson/fuellog-go/internal/domain/entity"
	"github.com/diillson/fuellog-go/internal/shared/types"
)

// numberFormat formata um valor com casas decimais fixas.
type numberFormat func(value float64, decimals int) string

// periodDecimals is used by the delimited encoding regardless of locale, so a
// comma decimal can never be mistaken for a field separator.
func periodDecimals(value float64, decimals int) string {
	return strconv.FormatFloat(value, 'f', decimals, 64)
}

// field é um par rótulo/valor das seções de informação.
type field struct {
	Label string
	Value string
}

// metricRow é uma linha da tabela de estatísticas.
type metricRow struct {
	Stream string
	Metric string
	Value  string
	Unit   string
}

// eventTable holds the localized header and rows of one event stream.
type eventTable struct {
	Title    string
	Category entity.Category
	Header   []string
	Rows     [][]string
}

// view is the localized, display-ready projection of a report bundle. Every
// value is read from the bundle as computed; nothing is recalculated here.
type view struct {
	Title       string
	Vehicle     []field
	Summary     []metricRow
	Events      []eventTable
	Diagnostics [][]string
	DiagHeader  []string
}

type viewBuilder struct {
	t     types.Localizer
	num   numberFormat
	prefs entity.Preferences
	style analytics.DateStyle
}

func (b viewBuilder) none() string {
	return b.t.T("value.none", nil)
}

func (b viewBuilder) opt(v *float64, decimals int) string {
	if v == nil {
		return b.none()
	}
	return b.num(*v, decimals)
}

func (b viewBuilder) build(bundle entity.ReportBundle) view {
	v := view{
		Title: b.t.T("report.title", map[string]string{"vehicle": bundle.Vehicle.DisplayName()}),
	}
	v.Vehicle = b.vehicleFields(bundle.Vehicle)
	v.Summary = b.summaryRows(bundle.Statistics)

	if bundle.Statistics.Fuel != nil || len(bundle.Fillings) > 0 {
		v.Events = append(v.Events, b.eventTable(entity.CategoryFuel, bundle.Fillings))
	}
	if bundle.Statistics.Electricity != nil || len(bundle.Charging) > 0 {
		v.Events = append(v.Events, b.eventTable(entity.CategoryElectricity, bundle.Charging))
	}

	if len(bundle.Statistics.Diagnostics) > 0 {
		v.DiagHeader = []string{
			b.t.T("column.event", nil),
			b.t.T("column.category", nil),
			b.t.T("column.reason", nil),
			b.t.T("column.detail", nil),
		}
		for _, d := range bundle.Statistics.Diagnostics {
			v.Diagnostics = append(v.Diagnostics, []string{
				d.EventID,
				b.t.T("stream."+string(d.Category), nil),
				b.t.T("reason."+string(d.Reason), nil),
				b.diagnosticDetail(d),
			})
		}
	}
	return v
}

// diagnosticDetail monta a frase localizada a partir dos valores do diagnóstico.
func (b viewBuilder) diagnosticDetail(d entity.Diagnostic) string {
	us := b.prefs.UnitSystem
	params := map[string]string{"related": d.RelatedEventID, "value": d.Detail}
	switch d.Reason {
	case entity.ReasonNonPositiveDelta:
		params["value"] = b.opt(analytics.PresentDistance(d.Value, us), 1)
		params["unit"] = analytics.DistanceUnit(us)
	case entity.ReasonNonPositiveAmount:
		if d.Value != nil {
			params["value"] = b.num(analytics.PresentQuantity(d.Category, *d.Value, us), 2)
		} else {
			params["value"] = b.none()
		}
		params["unit"] = analytics.QuantityUnit(d.Category, us)
	case entity.ReasonImplausibleRate:
		params["value"] = b.opt(analytics.PresentConsumption(d.Category, d.Value, us), 2)
		params["unit"] = analytics.ConsumptionUnit(d.Category, us)
	case entity.ReasonInvalidDate, entity.ReasonOdometerOutOfOrder:
	default:
		return d.Detail
	}
	return b.t.T("detail."+string(d.Reason), params)
}

func (b viewBuilder) vehicleFields(vh entity.Vehicle) []field {
	fields := []field{
		{b.t.T("field.name", nil), vh.DisplayName()},
		{b.t.T("field.id", nil), vh.ID},
	}
	if vh.Make != "" {
		fields = append(fields, field{b.t.T("field.make", nil), vh.Make})
	}
	if vh.Model != "" {
		fields = append(fields, field{b.t.T("field.model", nil), vh.Model})
	}
	if vh.Year > 0 {
		fields = append(fields, field{b.t.T("field.year", nil), strconv.Itoa(vh.Year)})
	}
	if vh.Type != "" {
		fields = append(fields, field{b.t.T("field.type", nil), string(vh.Type)})
	}
	if vh.FuelTankSizeL != nil {
		size := analytics.PresentQuantity(entity.CategoryFuel, *vh.FuelTankSizeL, b.prefs.UnitSystem)
		fields = append(fields, field{b.t.T("field.tank", nil),
			b.num(size, 1) + " " + analytics.QuantityUnit(entity.CategoryFuel, b.prefs.UnitSystem)})
	}
	if vh.BatteryCapacityKWh != nil {
		fields = append(fields, field{b.t.T("field.battery", nil), b.num(*vh.BatteryCapacityKWh, 1) + " kWh"})
	}
	fields = append(fields,
		field{b.t.T("field.unit_system", nil), string(b.prefs.UnitSystem)},
		field{b.t.T("field.currency", nil), b.prefs.Currency},
	)
	return fields
}

func (b viewBuilder) summaryRows(stats entity.Statistics) []metricRow {
	var rows []metricRow
	for _, s := range []*entity.StreamStatistics{stats.Fuel, stats.Electricity} {
		if s == nil {
			continue
		}
		rows = append(rows, b.streamRows(*s)...)
	}
	rows = append(rows, metricRow{
		Metric: b.t.T("stat.grand_total", nil),
		Value:  b.num(stats.TotalCost, 2),
		Unit:   analytics.CurrencySymbol(b.prefs.Currency),
	})
	return rows
}

func (b viewBuilder) streamRows(s entity.StreamStatistics) []metricRow {
	us := b.prefs.UnitSystem
	stream := b.t.T("stream."+string(s.Category), nil)
	currency := analytics.CurrencySymbol(b.prefs.Currency)
	qtyUnit := analytics.QuantityUnit(s.Category, us)
	distUnit := analytics.DistanceUnit(us)
	days := b.t.T("unit.days", nil)

	row := func(key string, params map[string]string, value, unit string) metricRow {
		return metricRow{Stream: stream, Metric: b.t.T(key, params), Value: value, Unit: unit}
	}

	return []metricRow{
		row("stat.event_count", nil, strconv.Itoa(s.EventCount), ""),
		row("stat.total_quantity", nil, b.num(analytics.PresentQuantity(s.Category, s.TotalQuantity, us), 2), qtyUnit),
		row("stat.average_consumption", nil, b.opt(analytics.PresentConsumption(s.Category, s.AverageConsumption, us), 2), analytics.ConsumptionUnit(s.Category, us)),
		row("stat.average_price", nil, b.opt(analytics.PresentPricePerUnit(s.Category, s.AveragePricePerUnit, us), 3), currency+"/"+qtyUnit),
		row("stat.average_event_cost", nil, b.opt(s.AverageEventCost, 2), currency),
		row("stat.total_cost", nil, b.num(s.TotalCost, 2), currency),
		row("stat.cost_per_distance", map[string]string{"unit": distUnit}, b.opt(analytics.PresentCostPerDistance(s.CostPer100Km, us), 2), currency),
		row("stat.total_distance", nil, b.opt(analytics.PresentDistance(s.TotalDistanceKm, us), 1), distUnit),
		row("stat.average_distance", nil, b.opt(analytics.PresentDistance(s.AverageDistanceKm, us), 1), distUnit),
		row("stat.longest_interval", nil, b.opt(analytics.PresentDistance(s.LongestIntervalKm, us), 1), distUnit),
		row("stat.average_days", nil, b.opt(s.AverageDaysBetween, 1), days),
		row("stat.days_since", nil, b.opt(s.DaysSinceLast, 0), days),
	}
}

func (b viewBuilder) eventTable(c entity.Category, records []entity.UsageRecord) eventTable {
	us := b.prefs.UnitSystem
	distUnit := analytics.DistanceUnit(us)
	currency := analytics.CurrencySymbol(b.prefs.Currency)

	table := eventTable{
		Category: c,
		Header: []string{
			b.t.T("column.event", nil),
			b.t.T("column.date", nil),
			b.t.T("column.odometer", map[string]string{"unit": distUnit}),
			b.t.T("column.quantity", map[string]string{"unit": analytics.QuantityUnit(c, us)}),
			b.t.T("column.cost", map[string]string{"currency": currency}),
		},
	}
	if c == entity.CategoryElectricity {
		table.Title = b.t.T("section.charging", nil)
		table.Header = append(table.Header,
			b.t.T("column.location_type", nil),
			b.t.T("column.charger_type", nil),
			b.t.T("column.location_name", nil),
		)
	} else {
		table.Title = b.t.T("section.fillings", nil)
	}

	for _, r := range records {
		odometer := r.OdometerKm
		if us == entity.UnitSystemImperial {
			odometer = analytics.KmToMiles(odometer)
		}
		cells := []string{
			r.ID,
			analytics.FormatDateLabel(r.Date, b.style),
			b.num(odometer, 0),
			b.num(analytics.PresentQuantity(c, r.Quantity, us), 2),
			b.num(r.Cost, 2),
		}
		if c == entity.CategoryElectricity {
			loc := entity.ChargerLocation{}
			if r.Location != nil {
				loc = *r.Location
			}
			cells = append(cells, loc.Type, loc.ChargerType, loc.Name)
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}
