package export

import (
	"bytes"
	"fmt"

	"github.com/diillson/fuellog-go/internal/domain/entity"
	"github.com/jung-kurt/gofpdf"
)

// pdfChartSize é o gráfico do PDF em milímetros.
var pdfChartSize = ChartSize{Width: 190, Height: 85, Margin: 14}

var pdfCategoryColors = map[entity.Category][3]int{
	entity.CategoryFuel:        {230, 126, 34},
	entity.CategoryElectricity: {46, 134, 222},
}

// RenderPDF draws the same report as RenderDocument on A4 pages, with the
// consumption chart drawn from the shared chart geometry.
func (f *Formatter) RenderPDF(bundle entity.ReportBundle) ([]byte, error) {
	prefs := bundle.Preferences.Normalized()
	v := f.builder(bundle, f.t.FormatNumber).build(bundle)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	sectionTitle := func(title string) {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(3)
	}

	table := func(header []string, rows [][]string) {
		width := 190 / float64(len(header))
		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(240, 240, 240)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		for _, h := range header {
			pdf.CellFormat(width, 6, tr(h), "B", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
		for _, row := range rows {
			for _, cell := range row {
				pdf.CellFormat(width, 5, tr(cell), "", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, tr(f.generatedLabel(bundle)), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  "+v.Title), "", 1, "L", true, 0, "")

	sectionTitle(f.t.T("section.vehicle", nil))
	vehicleRows := make([][]string, len(v.Vehicle))
	for i, fl := range v.Vehicle {
		vehicleRows[i] = []string{fl.Label, fl.Value}
	}
	table([]string{f.t.T("column.metric", nil), f.t.T("column.value", nil)}, vehicleRows)

	sectionTitle(f.t.T("section.summary", nil))
	summaryRows := make([][]string, len(v.Summary))
	for i, r := range v.Summary {
		summaryRows[i] = []string{r.Stream, r.Metric, r.Value, r.Unit}
	}
	table([]string{
		f.t.T("column.stream", nil),
		f.t.T("column.metric", nil),
		f.t.T("column.value", nil),
		f.t.T("column.unit", nil),
	}, summaryRows)

	pdf.AddPage()
	sectionTitle(f.t.T("section.chart", nil))
	chart := BuildChart(bundle.Statistics.Series, prefs.UnitSystem, pdfChartSize, f.t.FormatNumber)
	if chart.Empty() {
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 6, tr(f.t.T("chart.empty", nil)))
		pdf.Ln(8)
	} else {
		f.drawPDFChart(pdf, chart, pdf.GetX(), pdf.GetY(), tr)
		pdf.SetY(pdf.GetY() + chart.Size.Height + 4)
	}

	for _, t := range v.Events {
		sectionTitle(t.Title)
		table(t.Header, t.Rows)
	}

	if len(v.Diagnostics) > 0 {
		sectionTitle(f.t.T("section.diagnostics", nil))
		table(v.DiagHeader, v.Diagnostics)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error writing PDF report: %w", err)
	}
	return buf.Bytes(), nil
}

func (f *Formatter) drawPDFChart(pdf *gofpdf.Fpdf, chart Chart, originX, originY float64, tr func(string) string) {
	x := func(v float64) float64 { return originX + v }
	y := func(v float64) float64 { return originY + v }

	pdf.SetDrawColor(127, 140, 141)
	pdf.SetLineWidth(0.3)
	pdf.Line(x(chart.Left), y(chart.Top), x(chart.Left), y(chart.Bottom))
	pdf.Line(x(chart.Left), y(chart.Bottom), x(chart.Right), y(chart.Bottom))

	pdf.SetFont("Arial", "", 7)
	pdf.SetTextColor(127, 140, 141)
	for _, t := range chart.YTicks {
		pdf.SetDrawColor(236, 240, 241)
		pdf.Line(x(chart.Left), y(t.Pos), x(chart.Right), y(t.Pos))
		pdf.Text(x(chart.Left)-pdf.GetStringWidth(t.Label)-1.5, y(t.Pos)+1, tr(t.Label))
	}
	for _, t := range chart.XTicks {
		pdf.Text(x(t.Pos)-pdf.GetStringWidth(t.Label)/2, y(chart.Bottom)+4, tr(t.Label))
	}

	legendX := x(chart.Left)
	for _, line := range chart.Lines {
		c := pdfCategoryColors[line.Category]
		pdf.SetDrawColor(c[0], c[1], c[2])
		pdf.SetFillColor(c[0], c[1], c[2])
		pdf.SetLineWidth(0.6)
		for i := 1; i < len(line.Points); i++ {
			prev, curr := line.Points[i-1], line.Points[i]
			pdf.Line(x(prev.X), y(prev.Y), x(curr.X), y(curr.Y))
		}
		for _, p := range line.Points {
			pdf.Circle(x(p.X), y(p.Y), 0.9, "F")
		}

		label := fmt.Sprintf("%s (%s)", f.t.T("stream."+string(line.Category), nil), line.Unit)
		pdf.Circle(legendX+1, y(chart.Bottom)+8, 1, "F")
		pdf.SetTextColor(50, 50, 50)
		pdf.Text(legendX+3, y(chart.Bottom)+9, tr(label))
		legendX += pdf.GetStringWidth(label) + 10
	}
	pdf.SetLineWidth(0.2)
}
