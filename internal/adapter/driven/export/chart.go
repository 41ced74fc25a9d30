package export

import (
	"math"

	"github.com/diillson/fuellog-go/internal/domain/analytics"
	"github.com/diillson/fuellog-go/internal/domain/entity"
)

// ChartSize is the canvas of a consumption chart. Units are whatever the
// target uses: pixels for SVG, millimetres for PDF.
type ChartSize struct {
	Width  float64
	Height float64
	Margin float64
}

// DefaultChartSize é o tamanho do gráfico SVG do documento HTML.
var DefaultChartSize = ChartSize{Width: 640, Height: 320, Margin: 48}

// ChartPoint é um marcador já posicionado no canvas.
type ChartPoint struct {
	X, Y  float64
	Value float64
	Label string
}

// ChartLine is the polyline of one category.
type ChartLine struct {
	Category entity.Category
	Unit     string
	Points   []ChartPoint
}

// Tick é um rótulo de eixo na posição Pos (Y para o eixo vertical, X para o horizontal).
type Tick struct {
	Pos   float64
	Label string
}

// Chart holds the hand-computed geometry shared by the SVG and PDF renderers.
type Chart struct {
	Size   ChartSize
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
	Min    float64
	Max    float64
	Lines  []ChartLine
	YTicks []Tick
	XTicks []Tick
}

// Empty reports whether there is nothing to plot.
func (c Chart) Empty() bool {
	return len(c.Lines) == 0
}

// Normalize maps v into [0,1] over [lo,hi]. A degenerate range maps to the middle.
func Normalize(v, lo, hi float64) float64 {
	if hi == lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}

// ScaleY converts a value to a vertical offset inside a plot of the given height.
func ScaleY(v, lo, hi, height float64) float64 {
	return height - Normalize(v, lo, hi)*height
}

// paddedRange widens [min,max] by 10% of the range on each side.
func paddedRange(min, max float64) (float64, float64) {
	pad := (max - min) * 0.1
	if pad == 0 {
		pad = math.Max(math.Abs(max)*0.1, 1)
	}
	return min - pad, max + pad
}

const (
	yTickCount   = 5
	maxXTicks    = 6
	yTickDecimal = 1
)

// BuildChart lays out the consumption series on a canvas. Values are shown in
// the user's unit system; X positions come from each point's sequence index.
func BuildChart(series entity.Series, us entity.UnitSystem, size ChartSize, num numberFormat) Chart {
	chart := Chart{
		Size:   size,
		Left:   size.Margin,
		Top:    size.Margin / 2,
		Right:  size.Width - size.Margin/2,
		Bottom: size.Height - size.Margin,
	}

	type raw struct {
		category entity.Category
		points   []entity.ConsumptionPoint
		values   []float64
	}
	var streams []raw
	first := true
	maxIndex := 0
	for _, c := range []entity.Category{entity.CategoryFuel, entity.CategoryElectricity} {
		points := series.Points(c)
		if len(points) == 0 {
			continue
		}
		values := make([]float64, len(points))
		for i, p := range points {
			v := p.Value
			if shown := analytics.PresentConsumption(c, &v, us); shown != nil {
				v = *shown
			}
			values[i] = v
			if first {
				chart.Min, chart.Max = v, v
				first = false
			}
			chart.Min = math.Min(chart.Min, v)
			chart.Max = math.Max(chart.Max, v)
			if p.SequenceIndex > maxIndex {
				maxIndex = p.SequenceIndex
			}
		}
		streams = append(streams, raw{category: c, points: points, values: values})
	}
	if len(streams) == 0 {
		return chart
	}

	lo, hi := paddedRange(chart.Min, chart.Max)
	plotW := chart.Right - chart.Left
	plotH := chart.Bottom - chart.Top

	xOf := func(index int) float64 {
		if maxIndex == 0 {
			return chart.Left + plotW/2
		}
		return chart.Left + float64(index)/float64(maxIndex)*plotW
	}

	var longest []entity.ConsumptionPoint
	for _, s := range streams {
		line := ChartLine{Category: s.category, Unit: analytics.ConsumptionUnit(s.category, us)}
		for i, p := range s.points {
			line.Points = append(line.Points, ChartPoint{
				X:     xOf(p.SequenceIndex),
				Y:     chart.Top + ScaleY(s.values[i], lo, hi, plotH),
				Value: s.values[i],
				Label: p.DateLabel,
			})
		}
		chart.Lines = append(chart.Lines, line)
		if len(s.points) > len(longest) {
			longest = s.points
		}
	}

	for i := 0; i < yTickCount; i++ {
		v := lo + (hi-lo)*float64(i)/float64(yTickCount-1)
		chart.YTicks = append(chart.YTicks, Tick{
			Pos:   chart.Top + ScaleY(v, lo, hi, plotH),
			Label: num(v, yTickDecimal),
		})
	}

	step := 1
	if len(longest) > maxXTicks {
		step = int(math.Ceil(float64(len(longest)) / float64(maxXTicks)))
	}
	for i := 0; i < len(longest); i += step {
		chart.XTicks = append(chart.XTicks, Tick{Pos: xOf(longest[i].SequenceIndex), Label: longest[i].DateLabel})
	}
	return chart
}
