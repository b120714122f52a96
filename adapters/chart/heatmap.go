package chart

import (
	"fmt"
	"math"

	"statreport/domain/stats"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	coolLow  = rgb(59, 76, 192)
	coolMid  = rgb(221, 221, 221)
	coolHigh = rgb(180, 4, 38)
	nanCell  = rgb(200, 200, 200)
)

// coolwarm maps a coefficient in [-1, 1] onto a diverging blue-red scale.
func coolwarm(v float64) drawing.Color {
	if math.IsNaN(v) {
		return nanCell
	}
	v = math.Max(-1, math.Min(1, v))
	if v < 0 {
		return lerp(coolMid, coolLow, -v)
	}
	return lerp(coolMid, coolHigh, v)
}

func lerp(a, b drawing.Color, f float64) drawing.Color {
	mix := func(x, y uint8) uint8 { return uint8(math.Round(float64(x) + (float64(y)-float64(x))*f)) }
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

func drawHeatmap(c *canvas, t Theme, title string, m stats.CorrelationMatrix) error {
	n := m.Len()
	if n == 0 || m.IsEmpty() {
		return fmt.Errorf("empty correlation matrix")
	}

	r, err := c.renderer()
	if err != nil {
		return err
	}
	background(r, c.width, c.height, t, title)

	r.SetFontSize(9)
	labelWidth := 0
	for _, name := range m.Columns {
		if w := textWidth(r, shorten(name, 18)); w > labelWidth {
			labelWidth = w
		}
	}

	const barWidth, barGap = 16, 40
	left := 20 + labelWidth + 8
	top := 44
	cell := min((c.width-left-barWidth-barGap-40)/n, (c.height-top-40)/n)
	if cell < 8 {
		return fmt.Errorf("%d columns do not fit a %dx%d heatmap", n, c.width, c.height)
	}
	size := cell * n

	annotate := cell >= 24
	for i := 0; i < n; i++ {
		y := top + i*cell
		text(r, shorten(m.Columns[i], 18), left-8, y+cell/2+4, 9, t.Text, alignRight)
		for j := 0; j < n; j++ {
			x := left + j*cell
			v := m.At(i, j)
			fillRect(r, x, y, x+cell, y+cell, coolwarm(v))
			if annotate && !math.IsNaN(v) {
				ink := t.Text
				if math.Abs(v) > 0.6 {
					ink = rgb(255, 255, 255)
				}
				text(r, fmt.Sprintf("%.2f", v), x+cell/2, y+cell/2+4, 9, ink, alignCenter)
			}
		}
	}
	for j := 0; j < n; j++ {
		x := left + j*cell + cell/2
		text(r, shorten(m.Columns[j], max(3, cell/7)), x, top+size+14, 9, t.Text, alignCenter)
	}

	// colour bar
	bx := left + size + barGap
	for y := 0; y < size; y++ {
		v := 1 - 2*float64(y)/float64(size-1)
		line(r, bx, top+y, bx+barWidth, top+y, coolwarm(v), 1)
	}
	for _, v := range []float64{1, 0.5, 0, -0.5, -1} {
		y := top + int(math.Round((1-v)/2*float64(size-1)))
		text(r, fmt.Sprintf("%.1f", v), bx+barWidth+6, y+4, 9, t.Text, alignLeft)
	}
	return c.save()
}
