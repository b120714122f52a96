package chart

import (
	"fmt"
	"math"
	"strconv"

	"statreport/domain/stats"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// maxBars caps the categories drawn; the most frequent ones are kept.
const maxBars = 30

func drawBar(c *canvas, t Theme, title string, table stats.FrequencyTable) error {
	rows := table.Rows
	if len(rows) == 0 {
		return fmt.Errorf("no categories")
	}
	if len(rows) > maxBars {
		rows = rows[:maxBars]
	}

	bars := make([]gochart.Value, len(rows))
	top := 0
	for i, row := range rows {
		bars[i] = gochart.Value{
			Label: shorten(row.Value, 14),
			Value: float64(row.Count),
			Style: gochart.Style{FillColor: t.Accent, StrokeColor: t.Edge, StrokeWidth: 1},
		}
		if row.Count > top {
			top = row.Count
		}
	}

	plotWidth := c.width - 100
	spacing := 8
	width := plotWidth/len(bars) - spacing
	if width < 4 {
		width, spacing = 4, 2
	}

	yMax := countCeiling(top)
	ch := gochart.BarChart{
		Title:      title,
		TitleStyle: gochart.Style{FontColor: t.Text, FontSize: 12},
		Width:      c.width,
		Height:     c.height,
		BarWidth:   width,
		BarSpacing: spacing,
		Background: gochart.Style{FillColor: t.Background, Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Canvas:     gochart.Style{FillColor: t.Plot},
		XAxis:      gochart.Style{FontColor: t.Text, StrokeColor: t.Axis, FontSize: 8},
		YAxis: gochart.YAxis{
			Style: gochart.Style{FontColor: t.Text, StrokeColor: t.Axis},
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(yMax)},
			Ticks: countTicks(yMax),
		},
		Bars: bars,
	}
	return ch.Render(gochart.PNG, c.buf)
}

// countCeiling returns an axis maximum at or above n with a round step.
func countCeiling(n int) int {
	if n < 1 {
		return 1
	}
	step := tickStep(n)
	return int(math.Ceil(float64(n)/float64(step))) * step
}

func tickStep(n int) int {
	raw := float64(n) / 5
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if raw <= m*mag {
			step := int(m * mag)
			if step < 1 {
				step = 1
			}
			return step
		}
	}
	return int(10 * mag)
}

// countTicks labels every integer step up to max.
func countTicks(max int) []gochart.Tick {
	step := tickStep(max)
	var ticks []gochart.Tick
	for v := 0; v <= max; v += step {
		ticks = append(ticks, gochart.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	return ticks
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
