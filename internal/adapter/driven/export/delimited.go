package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/diillson/fuellog-go/internal/domain/entity"
)

// RenderDelimited encodes the bundle as sectioned comma-separated rows:
// vehicle information, summary statistics, one block per event stream and the
// diagnostics. Numbers always use period decimals.
func (f *Formatter) RenderDelimited(bundle entity.ReportBundle) ([]byte, error) {
	v := f.builder(bundle, periodDecimals).build(bundle)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{v.Title}, {}}

	records = append(records, []string{f.t.T("section.vehicle", nil)})
	for _, fl := range v.Vehicle {
		records = append(records, []string{fl.Label, fl.Value})
	}
	records = append(records, []string{})

	records = append(records, []string{f.t.T("section.summary", nil)})
	records = append(records, []string{
		f.t.T("column.stream", nil),
		f.t.T("column.metric", nil),
		f.t.T("column.value", nil),
		f.t.T("column.unit", nil),
	})
	for _, r := range v.Summary {
		records = append(records, []string{r.Stream, r.Metric, r.Value, r.Unit})
	}

	for _, table := range v.Events {
		records = append(records, []string{}, []string{table.Title}, table.Header)
		records = append(records, table.Rows...)
	}

	if len(v.Diagnostics) > 0 {
		records = append(records, []string{}, []string{f.t.T("section.diagnostics", nil)}, v.DiagHeader)
		records = append(records, v.Diagnostics...)
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("error writing delimited report: %w", err)
	}
	return buf.Bytes(), nil
}
