package export

import (
	"github.com/diillson/fuellog-go/internal/domain/analytics"
	"github.com/diillson/fuellog-go/internal/domain/entity"
	"github.com/diillson/fuellog-go/internal/shared/types"
)

// Formatter renders a computed ReportBundle into the export encodings. It
// only reads the statistics it is given.
type Formatter struct {
	t     types.Localizer
	style analytics.DateStyle
	chart ChartSize
}

// NewFormatter cria um Formatter com o tamanho de gráfico padrão.
func NewFormatter(t types.Localizer, style analytics.DateStyle) *Formatter {
	return &Formatter{t: t, style: style, chart: DefaultChartSize}
}

// WithChartSize devolve uma cópia do Formatter com outro tamanho de gráfico.
func (f *Formatter) WithChartSize(size ChartSize) *Formatter {
	out := *f
	out.chart = size
	return &out
}

func (f *Formatter) builder(bundle entity.ReportBundle, num numberFormat) viewBuilder {
	return viewBuilder{
		t:     f.t,
		num:   num,
		prefs: bundle.Preferences.Normalized(),
		style: f.style,
	}
}

func (f *Formatter) generatedLabel(bundle entity.ReportBundle) string {
	return f.t.T("report.generated", map[string]string{
		"date": analytics.FormatDateLabel(bundle.Statistics.ComputedAt, f.style),
	})
}
