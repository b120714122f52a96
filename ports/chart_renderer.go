package ports

import "statreport/domain/stats"

// ChartRenderer draws PNG charts. The returned bytes are always a valid
// image; a non-nil error means a placeholder was drawn instead.
type ChartRenderer interface {
	Histogram(theme, title string, values []float64) ([]byte, error)
	BoxPlot(theme, title string, values []float64) ([]byte, error)
	Bar(theme, title string, table stats.FrequencyTable) ([]byte, error)
	Heatmap(theme, title string, m stats.CorrelationMatrix) ([]byte, error)
}
