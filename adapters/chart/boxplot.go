package chart

import (
	"fmt"
	"math"

	"statreport/internal/statistics"

	gochart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"
)

// whiskerCoef is the Tukey fence multiplier.
const whiskerCoef = 1.5

type boxSummary struct {
	Q1, Median, Q3 float64
	Low, High      float64 // whisker ends
	Outliers       []float64
}

func summarizeBox(sorted []float64) boxSummary {
	q1, med, q3 := statistics.Quartiles(sorted)
	iqr := q3 - q1
	lower, upper := q1-whiskerCoef*iqr, q3+whiskerCoef*iqr

	b := boxSummary{Q1: q1, Median: med, Q3: q3, Low: q1, High: q3}
	for _, v := range sorted {
		if v < lower || v > upper {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		b.Low = math.Min(b.Low, v)
		b.High = math.Max(b.High, v)
	}
	return b
}

// plotArea is the inner rectangle of a raw chart plus its x scale.
type plotArea struct {
	left, top, right, bottom int
	min, max                 float64
}

func (p plotArea) x(v float64) int {
	return p.left + int(math.Round((v-p.min)/(p.max-p.min)*float64(p.right-p.left)))
}

func drawBoxPlot(c *canvas, t Theme, title string, values []float64) error {
	sorted := finiteSorted(values)
	if len(sorted) == 0 {
		return fmt.Errorf("no finite values")
	}
	b := summarizeBox(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 0.5
	}
	area := plotArea{left: 40, top: 50, right: c.width - 40, bottom: c.height - 50, min: lo - pad, max: hi + pad}

	r, err := c.renderer()
	if err != nil {
		return err
	}
	background(r, c.width, c.height, t, title)
	fillRect(r, area.left, area.top, area.right, area.bottom, t.Plot)

	ticks := tickValues(area.min, area.max, 6)
	for _, v := range ticks {
		x := area.x(v)
		if t.ShowGrid {
			line(r, x, area.top, x, area.bottom, t.Grid, 1)
		}
		line(r, x, area.bottom, x, area.bottom+5, t.Text, 1)
		text(r, formatTick(v), x, area.bottom+18, 9, t.Text, alignCenter)
	}
	line(r, area.left, area.bottom, area.right, area.bottom, t.Axis, 1)

	mid := (area.top + area.bottom) / 2
	half := (area.bottom - area.top) / 5

	drawWhisker(r, area.x(b.Low), area.x(b.Q1), mid, half/2, t)
	drawWhisker(r, area.x(b.High), area.x(b.Q3), mid, half/2, t)
	strokeRect(r, area.x(b.Q1), mid-half, area.x(b.Q3), mid+half, t.Accent, t.Text, 1.5)
	line(r, area.x(b.Median), mid-half, area.x(b.Median), mid+half, t.Text, 2)

	for _, v := range b.Outliers {
		x := area.x(v)
		strokeRect(r, x-3, mid-3, x+3, mid+3, t.Plot, t.Text, 1)
	}
	return c.save()
}

func drawWhisker(r gochart.Renderer, end, box, mid, capHalf int, t Theme) {
	line(r, end, mid, box, mid, t.Text, 1.5)
	line(r, end, mid-capHalf, end, mid+capHalf, t.Text, 1.5)
}

// tickValues returns n evenly spaced values across [min, max].
func tickValues(min, max float64, n int) []float64 {
	return floats.Span(make([]float64, n), min, max)
}

func formatTick(v float64) string {
	if math.Abs(v) < 1e-9 {
		v = 0
	}
	return fmt.Sprintf("%.4g", v)
}
