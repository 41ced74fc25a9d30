package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/diillson/fuellog-go/internal/domain/entity"
)

var categoryColors = map[entity.Category]string{
	entity.CategoryFuel:        "#e67e22",
	entity.CategoryElectricity: "#2e86de",
}

type documentData struct {
	Report     view
	Lang       string
	Generated  string
	Sections   map[string]string
	Columns    []string
	Chart      Chart
	ChartEmpty string
	Legend     []legendEntry
}

type legendEntry struct {
	Label string
	Unit  string
	Color template.CSS
}

var documentTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"color":  func(c entity.Category) string { return categoryColors[c] },
	"points": polylinePoints,
	"coord":  func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
}).Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Report.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; color: #2c3e50; margin: 2rem; }
h1 { font-size: 1.6rem; margin-bottom: .2rem; }
h2 { font-size: 1.15rem; border-bottom: 1px solid #dfe4ea; padding-bottom: .3rem; margin-top: 2rem; }
.generated { color: #7f8c8d; font-size: .85rem; }
table { border-collapse: collapse; width: 100%; font-size: .9rem; }
th, td { text-align: left; padding: .35rem .6rem; border-bottom: 1px solid #f1f2f6; }
th { background: #f7f9fb; }
td.num { text-align: right; font-variant-numeric: tabular-nums; }
.legend span { display: inline-block; margin-right: 1.2rem; }
.legend i { display: inline-block; width: .8rem; height: .8rem; border-radius: 50%; margin-right: .3rem; vertical-align: middle; }
</style>
</head>
<body>
<h1>{{.Report.Title}}</h1>
<p class="generated">{{.Generated}}</p>

<h2>{{index .Sections "vehicle"}}</h2>
<table>
{{- range .Report.Vehicle}}
<tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>
{{- end}}
</table>

<h2>{{index .Sections "summary"}}</h2>
<table>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{- range .Report.Summary}}
<tr><td>{{.Stream}}</td><td>{{.Metric}}</td><td class="num">{{.Value}}</td><td>{{.Unit}}</td></tr>
{{- end}}
</table>

<h2>{{index .Sections "chart"}}</h2>
{{- if .Chart.Empty}}
<p>{{.ChartEmpty}}</p>
{{- else}}
<p class="legend">{{range .Legend}}<span><i style="background: {{.Color}}"></i>{{.Label}} ({{.Unit}})</span>{{end}}</p>
<svg xmlns="http://www.w3.org/2000/svg" width="{{coord .Chart.Size.Width}}" height="{{coord .Chart.Size.Height}}" viewBox="0 0 {{coord .Chart.Size.Width}} {{coord .Chart.Size.Height}}" role="img">
<line x1="{{coord .Chart.Left}}" y1="{{coord .Chart.Top}}" x2="{{coord .Chart.Left}}" y2="{{coord .Chart.Bottom}}" stroke="#7f8c8d" stroke-width="1"/>
<line x1="{{coord .Chart.Left}}" y1="{{coord .Chart.Bottom}}" x2="{{coord .Chart.Right}}" y2="{{coord .Chart.Bottom}}" stroke="#7f8c8d" stroke-width="1"/>
{{- $c := .Chart}}
{{- range .Chart.YTicks}}
<line x1="{{coord $c.Left}}" y1="{{coord .Pos}}" x2="{{coord $c.Right}}" y2="{{coord .Pos}}" stroke="#ecf0f1" stroke-width="1"/>
<text x="{{coord $c.Left}}" y="{{coord .Pos}}" dx="-6" dy="4" text-anchor="end" font-size="11" fill="#7f8c8d">{{.Label}}</text>
{{- end}}
{{- range .Chart.XTicks}}
<text x="{{coord .Pos}}" y="{{coord $c.Bottom}}" dy="16" text-anchor="middle" font-size="11" fill="#7f8c8d">{{.Label}}</text>
{{- end}}
{{- range .Chart.Lines}}
{{- $color := color .Category}}
<polyline fill="none" stroke="{{$color}}" stroke-width="2" points="{{points .Points}}"/>
{{- range .Points}}
<circle cx="{{coord .X}}" cy="{{coord .Y}}" r="3.5" fill="{{$color}}"><title>{{.Label}}</title></circle>
{{- end}}
{{- end}}
</svg>
{{- end}}

{{- range .Report.Events}}
<h2>{{.Title}}</h2>
<table>
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</table>
{{- end}}

{{- if .Report.Diagnostics}}
<h2>{{index .Sections "diagnostics"}}</h2>
<table>
<tr>{{range .Report.DiagHeader}}<th>{{.}}</th>{{end}}</tr>
{{- range .Report.Diagnostics}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</table>
{{- end}}
</body>
</html>
`))

func polylinePoints(points []ChartPoint) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = strconv.FormatFloat(p.X, 'f', 2, 64) + "," + strconv.FormatFloat(p.Y, 'f', 2, 64)
	}
	return strings.Join(parts, " ")
}

// RenderDocument produces a standalone HTML document with an inline SVG
// consumption chart. Numbers follow the localizer's formatting.
func (f *Formatter) RenderDocument(bundle entity.ReportBundle) ([]byte, error) {
	prefs := bundle.Preferences.Normalized()
	data := documentData{
		Report:    f.builder(bundle, f.t.FormatNumber).build(bundle),
		Lang:      f.t.Locale(),
		Generated: f.generatedLabel(bundle),
		Sections: map[string]string{
			"vehicle":     f.t.T("section.vehicle", nil),
			"summary":     f.t.T("section.summary", nil),
			"chart":       f.t.T("section.chart", nil),
			"diagnostics": f.t.T("section.diagnostics", nil),
		},
		Columns: []string{
			f.t.T("column.stream", nil),
			f.t.T("column.metric", nil),
			f.t.T("column.value", nil),
			f.t.T("column.unit", nil),
		},
		Chart:      BuildChart(bundle.Statistics.Series, prefs.UnitSystem, f.chart, f.t.FormatNumber),
		ChartEmpty: f.t.T("chart.empty", nil),
	}
	for _, line := range data.Chart.Lines {
		data.Legend = append(data.Legend, legendEntry{
			Label: f.t.T("stream."+string(line.Category), nil),
			Unit:  line.Unit,
			Color: template.CSS(categoryColors[line.Category]),
		})
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("error rendering report document: %w", err)
	}
	return buf.Bytes(), nil
}
