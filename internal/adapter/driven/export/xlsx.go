package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/diillson/fuellog-go/internal/domain/analytics"
	"github.com/diillson/fuellog-go/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet     = "Summary"
	seriesSheet      = "Series"
	diagnosticsSheet = "Diagnostics"
)

// cellValue keeps numeric cells numeric in the spreadsheet.
func cellValue(s string) interface{} {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	return s
}

func rowValues(cells []string) *[]interface{} {
	out := make([]interface{}, len(cells))
	for i, c := range cells {
		out[i] = cellValue(c)
	}
	return &out
}

// RenderXLSX writes the report as a workbook with a summary sheet, one sheet
// per event stream and a native line chart of the consumption series.
func (f *Formatter) RenderXLSX(bundle entity.ReportBundle) ([]byte, error) {
	prefs := bundle.Preferences.Normalized()
	v := f.builder(bundle, periodDecimals).build(bundle)

	x := excelize.NewFile()
	defer x.Close()

	if err := x.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("error preparing workbook: %w", err)
	}

	row := 1
	put := func(sheet string, cells []string) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		row++
		return x.SetSheetRow(sheet, cell, rowValues(cells))
	}

	lines := [][]string{{v.Title}, {}, {f.t.T("section.vehicle", nil)}}
	for _, fl := range v.Vehicle {
		lines = append(lines, []string{fl.Label, fl.Value})
	}
	lines = append(lines, []string{}, []string{f.t.T("section.summary", nil)}, []string{
		f.t.T("column.stream", nil),
		f.t.T("column.metric", nil),
		f.t.T("column.value", nil),
		f.t.T("column.unit", nil),
	})
	for _, r := range v.Summary {
		lines = append(lines, []string{r.Stream, r.Metric, r.Value, r.Unit})
	}
	for _, l := range lines {
		if err := put(summarySheet, l); err != nil {
			return nil, fmt.Errorf("error writing summary sheet: %w", err)
		}
	}

	for _, t := range v.Events {
		if _, err := x.NewSheet(t.Title); err != nil {
			return nil, fmt.Errorf("error creating sheet %q: %w", t.Title, err)
		}
		row = 1
		if err := put(t.Title, t.Header); err != nil {
			return nil, fmt.Errorf("error writing sheet %q: %w", t.Title, err)
		}
		for _, r := range t.Rows {
			if err := put(t.Title, r); err != nil {
				return nil, fmt.Errorf("error writing sheet %q: %w", t.Title, err)
			}
		}
	}

	if err := f.writeSeriesSheet(x, bundle.Statistics.Series, prefs.UnitSystem); err != nil {
		return nil, err
	}

	if len(v.Diagnostics) > 0 {
		if _, err := x.NewSheet(diagnosticsSheet); err != nil {
			return nil, fmt.Errorf("error creating diagnostics sheet: %w", err)
		}
		row = 1
		for _, r := range append([][]string{v.DiagHeader}, v.Diagnostics...) {
			if err := put(diagnosticsSheet, r); err != nil {
				return nil, fmt.Errorf("error writing diagnostics sheet: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := x.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing XLSX report: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSeriesSheet lays out one column pair per category, indexed by sequence,
// and charts every non-empty column.
func (f *Formatter) writeSeriesSheet(x *excelize.File, series entity.Series, us entity.UnitSystem) error {
	if series.IsEmpty() {
		return nil
	}
	if _, err := x.NewSheet(seriesSheet); err != nil {
		return fmt.Errorf("error creating series sheet: %w", err)
	}

	header := []interface{}{"#"}
	var chartSeries []excelize.ChartSeries
	longest := 0
	col := 2
	for _, c := range []entity.Category{entity.CategoryFuel, entity.CategoryElectricity} {
		points := series.Points(c)
		if len(points) == 0 {
			continue
		}
		unit := analytics.ConsumptionUnit(c, us)
		header = append(header, f.t.T("column.date", nil), fmt.Sprintf("%s (%s)", f.t.T("stream."+string(c), nil), unit))

		for i, p := range points {
			value := p.Value
			if shown := analytics.PresentConsumption(c, &value, us); shown != nil {
				value = *shown
			}
			dateCell, err := excelize.CoordinatesToCellName(col, i+2)
			if err != nil {
				return err
			}
			if err := x.SetSheetRow(seriesSheet, dateCell, &[]interface{}{p.DateLabel, value}); err != nil {
				return fmt.Errorf("error writing series sheet: %w", err)
			}
		}

		name, err := absRange(seriesSheet, col+1, 1, 1)
		if err != nil {
			return err
		}
		categories, err := absRange(seriesSheet, col, 2, len(points)+1)
		if err != nil {
			return err
		}
		values, err := absRange(seriesSheet, col+1, 2, len(points)+1)
		if err != nil {
			return err
		}
		chartSeries = append(chartSeries, excelize.ChartSeries{
			Name:       name,
			Categories: categories,
			Values:     values,
		})
		if len(points) > longest {
			longest = len(points)
		}
		col += 2
	}

	if err := x.SetSheetRow(seriesSheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing series sheet: %w", err)
	}
	for i := 0; i < longest; i++ {
		if err := x.SetCellValue(seriesSheet, fmt.Sprintf("A%d", i+2), i); err != nil {
			return fmt.Errorf("error writing series sheet: %w", err)
		}
	}

	anchor, err := excelize.CoordinatesToCellName(col+1, 2)
	if err != nil {
		return err
	}
	if err := x.AddChart(seriesSheet, anchor, &excelize.Chart{
		Type:   excelize.Line,
		Series: chartSeries,
		Legend: excelize.ChartLegend{Position: "bottom"},
	}); err != nil {
		return fmt.Errorf("error adding consumption chart: %w", err)
	}
	return nil
}

// absRange devolve uma referência absoluta como "Series!$B$2:$B$9"; uma única
// linha vira uma célula só.
func absRange(sheet string, col, fromRow, toRow int) (string, error) {
	from, err := excelize.CoordinatesToCellName(col, fromRow, true)
	if err != nil {
		return "", err
	}
	if fromRow == toRow {
		return sheet + "!" + from, nil
	}
	to, err := excelize.CoordinatesToCellName(col, toRow, true)
	if err != nil {
		return "", err
	}
	return sheet + "!" + from + ":" + to, nil
}
