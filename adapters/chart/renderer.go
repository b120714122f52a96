// Package chart renders the report charts as PNG images.
package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"statreport/domain/core"
	"statreport/domain/report"
	"statreport/domain/stats"
	"statreport/internal"
)

// Options fixes the raster sizes of every chart kind.
type Options struct {
	Width         int
	Height        int
	HeatmapWidth  int
	HeatmapHeight int
	DefaultTheme  string
}

// DefaultOptions returns the sizes used by the dashboard and the PDF.
func DefaultOptions() Options {
	return Options{
		Width:         640,
		Height:        400,
		HeatmapWidth:  800,
		HeatmapHeight: 480,
		DefaultTheme:  DefaultTheme,
	}
}

// Renderer draws charts. Every method returns valid PNG bytes: when the
// input cannot be drawn the bytes are a placeholder and the error says
// why. Callers log the error and carry on.
type Renderer struct {
	opts   Options
	logger *internal.Logger
}

// NewRenderer creates a renderer. Zero sizes fall back to DefaultOptions.
func NewRenderer(opts Options, logger *internal.Logger) *Renderer {
	def := DefaultOptions()
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.HeatmapWidth <= 0 || opts.HeatmapHeight <= 0 {
		opts.HeatmapWidth, opts.HeatmapHeight = def.HeatmapWidth, def.HeatmapHeight
	}
	if _, ok := LookupTheme(opts.DefaultTheme); !ok {
		opts.DefaultTheme = DefaultTheme
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Renderer{opts: opts, logger: logger.Named("Charts")}
}

// Options returns the effective options.
func (r *Renderer) Options() Options { return r.opts }

// Theme resolves a theme name, falling back to the default theme.
func (r *Renderer) Theme(name string) Theme {
	if name == "" {
		name = r.opts.DefaultTheme
	}
	t, ok := LookupTheme(name)
	if !ok {
		r.logger.Warn("unknown theme %q, using %s", name, r.opts.DefaultTheme)
		t, _ = LookupTheme(r.opts.DefaultTheme)
	}
	return t
}

// Histogram draws binned counts of values with a density curve.
func (r *Renderer) Histogram(theme, title string, values []float64) ([]byte, error) {
	return r.render(report.ChartHistogram, theme, title, r.opts.Width, r.opts.Height,
		func(c *canvas, t Theme) error { return drawHistogram(c, t, title, values) })
}

// BoxPlot draws a horizontal box-and-whisker plot.
func (r *Renderer) BoxPlot(theme, title string, values []float64) ([]byte, error) {
	return r.render(report.ChartBoxPlot, theme, title, r.opts.Width, r.opts.Height,
		func(c *canvas, t Theme) error { return drawBoxPlot(c, t, title, values) })
}

// Bar draws one bar per frequency row.
func (r *Renderer) Bar(theme, title string, table stats.FrequencyTable) ([]byte, error) {
	return r.render(report.ChartBar, theme, title, r.opts.Width, r.opts.Height,
		func(c *canvas, t Theme) error { return drawBar(c, t, title, table) })
}

// Heatmap draws an annotated correlation matrix.
func (r *Renderer) Heatmap(theme, title string, m stats.CorrelationMatrix) ([]byte, error) {
	return r.render(report.ChartHeatmap, theme, title, r.opts.HeatmapWidth, r.opts.HeatmapHeight,
		func(c *canvas, t Theme) error { return drawHeatmap(c, t, title, m) })
}

type drawFunc func(c *canvas, t Theme) error

func (r *Renderer) render(kind report.ChartKind, theme, title string, width, height int, draw drawFunc) ([]byte, error) {
	t := r.Theme(theme)
	out, err := paint(width, height, t, draw)
	if err == nil {
		r.logger.Debug("rendered %s %q (%d bytes)", kind, title, len(out))
		return out, nil
	}

	r.logger.Warn("%s %q could not be rendered, using placeholder: %v", kind, title, err)
	return Placeholder(width, height, t, title), fmt.Errorf("%w: %s %q: %v", core.ErrRenderFailed, kind, title, err)
}

// paint runs draw on a fresh canvas and always releases it. Panics from
// the drawing library are turned into errors.
func paint(width, height int, t Theme, draw drawFunc) (out []byte, err error) {
	c, err := acquireCanvas(width, height)
	if err != nil {
		return nil, err
	}
	defer c.release()
	defer func() {
		if p := recover(); p != nil {
			out, err = nil, fmt.Errorf("drawing panicked: %v", p)
		}
	}()

	if err := draw(c, t); err != nil {
		return nil, err
	}
	if c.buf.Len() == 0 {
		return nil, fmt.Errorf("chart produced no output")
	}
	return c.bytes(), nil
}

// Placeholder returns a chart-sized image carrying the title and "no data".
func Placeholder(width, height int, t Theme, title string) []byte {
	out, err := paint(width, height, t, func(c *canvas, t Theme) error {
		rr, err := c.renderer()
		if err != nil {
			return err
		}
		background(rr, width, height, t, title)
		text(rr, "no data", width/2, height/2, 14, t.Text, alignCenter)
		return c.save()
	})
	if err == nil {
		return out
	}
	return blank(width, height, t)
}

// blank encodes a plain background when not even text can be drawn.
func blank(width, height int, t Theme) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bg := color.RGBA{R: t.Background.R, G: t.Background.G, B: t.Background.B, A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, bg)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
