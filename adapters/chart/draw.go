package chart

import (
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Thin helpers over the raw go-chart renderer. Coordinates are pixels
// from the top-left corner.

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

func fillRect(r gochart.Renderer, x0, y0, x1, y1 int, fill drawing.Color) {
	r.SetFillColor(fill)
	r.SetStrokeColor(drawing.ColorTransparent)
	r.SetStrokeWidth(0)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.Close()
	r.Fill()
}

func strokeRect(r gochart.Renderer, x0, y0, x1, y1 int, fill, stroke drawing.Color, width float64) {
	r.SetFillColor(fill)
	r.SetStrokeColor(stroke)
	r.SetStrokeWidth(width)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.Close()
	r.FillStroke()
}

func line(r gochart.Renderer, x0, y0, x1, y1 int, color drawing.Color, width float64) {
	r.SetStrokeColor(color)
	r.SetStrokeWidth(width)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.Stroke()
}

// text draws s with its baseline at y, aligned on x.
func text(r gochart.Renderer, s string, x, y int, size float64, color drawing.Color, a align) {
	r.SetFontSize(size)
	r.SetFontColor(color)
	switch a {
	case alignCenter:
		x -= textWidth(r, s) / 2
	case alignRight:
		x -= textWidth(r, s)
	}
	r.Text(s, x, y)
}

func textWidth(r gochart.Renderer, s string) int {
	w := r.MeasureText(s).Width()
	if w < 0 {
		w = -w
	}
	return w
}

// background paints the whole surface and the title band.
func background(r gochart.Renderer, width, height int, t Theme, title string) {
	fillRect(r, 0, 0, width, height, t.Background)
	if title != "" {
		text(r, title, width/2, 24, 12, t.Text, alignCenter)
	}
}
