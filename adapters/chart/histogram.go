package chart

import (
	"fmt"
	"math"
	"sort"

	"statreport/internal/statistics"

	"github.com/aclements/go-moremath/stats"
	gochart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"
)

const (
	maxBins     = 100
	densityStep = 200
)

// binEdges picks the bin count the way numpy's "auto" rule does: the
// smaller width of Sturges and Freedman-Diaconis wins.
func binEdges(sorted []float64) []float64 {
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
		return floats.Span(make([]float64, 2), lo, hi)
	}

	n := float64(len(sorted))
	span := hi - lo
	width := span / (math.Log2(n) + 1)
	iqr := statistics.Quantile(sorted, 0.75) - statistics.Quantile(sorted, 0.25)
	if fd := 2 * iqr * math.Pow(n, -1.0/3); fd > 0 && fd < width {
		width = fd
	}

	bins := int(math.Ceil(span / width))
	if bins < 1 {
		bins = 1
	}
	if bins > maxBins {
		bins = maxBins
	}
	return floats.Span(make([]float64, bins+1), lo, hi)
}

// binCounts counts sorted values per bin; the last bin is closed.
func binCounts(sorted, edges []float64) []float64 {
	counts := make([]float64, len(edges)-1)
	for _, v := range sorted {
		// left-closed bins: a value on edge i belongs to bin i
		i := sort.SearchFloat64s(edges, v)
		if i == len(edges) || edges[i] > v {
			i--
		}
		if i >= len(counts) {
			i = len(counts) - 1
		}
		if i < 0 {
			i = 0
		}
		counts[i]++
	}
	return counts
}

// densityCurve evaluates a Gaussian KDE (Scott bandwidth) scaled to
// counts. It returns nil when the density is undefined.
func densityCurve(sorted []float64, lo, hi, binWidth float64) (xs, ys []float64) {
	sample := stats.Sample{Xs: sorted, Sorted: true}
	sd := sample.StdDev()
	if len(sorted) < 2 || !(sd > 0) || math.IsInf(sd, 0) {
		return nil, nil
	}
	kde := &stats.KDE{
		Sample:    sample,
		Kernel:    stats.GaussianKernel,
		Bandwidth: sd * math.Pow(float64(len(sorted)), -0.2),
	}

	scale := float64(len(sorted)) * binWidth
	xs = floats.Span(make([]float64, densityStep), lo, hi)
	ys = make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = kde.PDF(x) * scale
	}
	return xs, ys
}

func finiteSorted(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

func drawHistogram(c *canvas, t Theme, title string, values []float64) error {
	sorted := finiteSorted(values)
	if len(sorted) == 0 {
		return fmt.Errorf("no finite values")
	}

	edges := binEdges(sorted)
	counts := binCounts(sorted, edges)
	lo, hi := edges[0], edges[len(edges)-1]
	xs, ys := densityCurve(sorted, lo, hi, edges[1]-edges[0])

	top := floats.Max(counts)
	if len(ys) > 0 {
		top = math.Max(top, floats.Max(ys))
	}
	top *= 1.05

	series := gridSeries(t, lo, hi, top)
	for i, count := range counts {
		if count == 0 {
			continue
		}
		series = append(series, gochart.ContinuousSeries{
			Style: gochart.Style{
				FillColor:   t.Accent.WithAlpha(200),
				StrokeColor: t.Edge,
				StrokeWidth: 1,
			},
			XValues: []float64{edges[i], edges[i], edges[i+1], edges[i+1]},
			YValues: []float64{0, count, count, 0},
		})
	}
	if len(xs) > 0 {
		series = append(series, gochart.ContinuousSeries{
			Style:   gochart.Style{StrokeColor: t.Line, StrokeWidth: 2},
			XValues: xs,
			YValues: ys,
		})
	}

	ch := gochart.Chart{
		Title:      title,
		TitleStyle: gochart.Style{FontColor: t.Text, FontSize: 12},
		Width:      c.width,
		Height:     c.height,
		Background: gochart.Style{FillColor: t.Background, Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Canvas:     gochart.Style{FillColor: t.Plot},
		XAxis: gochart.XAxis{
			Style: gochart.Style{FontColor: t.Text, StrokeColor: t.Axis},
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		YAxis: gochart.YAxis{
			Name:      "Count",
			NameStyle: gochart.Style{FontColor: t.Text},
			Style:     gochart.Style{FontColor: t.Text, StrokeColor: t.Axis},
			Range:     &gochart.ContinuousRange{Min: 0, Max: top},
		},
		Series: series,
	}
	return ch.Render(gochart.PNG, c.buf)
}

// gridSeries draws horizontal grid lines as flat series under the data.
func gridSeries(t Theme, lo, hi, top float64) []gochart.Series {
	if !t.ShowGrid || !(top > 0) {
		return nil
	}
	const lines = 5
	out := make([]gochart.Series, 0, lines)
	for i := 1; i <= lines; i++ {
		y := top * float64(i) / float64(lines+1)
		out = append(out, gochart.ContinuousSeries{
			Style:   gochart.Style{StrokeColor: t.Grid, StrokeWidth: 1},
			XValues: []float64{lo, hi},
			YValues: []float64{y, y},
		})
	}
	return out
}
