// Package statistics computes the descriptive statistics shown in the
// report: numeric summaries, Pearson correlation and frequency tables.
package statistics

import (
	"math"
	"sort"
	"strconv"

	"statreport/domain/core"
	"statreport/domain/dataset"
	domainstats "statreport/domain/stats"
	"statreport/internal"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Engine is stateless apart from its logger and safe for concurrent use.
type Engine struct {
	logger *internal.Logger
}

// NewEngine creates an engine. A nil logger uses internal.DefaultLogger.
func NewEngine(logger *internal.Logger) *Engine {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Engine{logger: logger.Named("Statistics")}
}

// Summarize describes each selected numeric column, in selection order.
// Names that are unknown or not numeric are skipped.
func (e *Engine) Summarize(ds *dataset.Dataset, selected []string) []domainstats.ColumnStats {
	out := make([]domainstats.ColumnStats, 0, len(selected))
	for _, name := range selected {
		col, ok := ds.Column(name)
		if !ok {
			e.logger.Warn("skipping unknown column %q", name)
			continue
		}
		if !col.IsNumeric() {
			e.logger.Warn("skipping non-numeric column %q", name)
			continue
		}
		out = append(out, Describe(name, col.Present()))
	}
	return out
}

// Describe summarises one column's present values.
func Describe(name string, values []float64) domainstats.ColumnStats {
	if len(values) == 0 {
		return domainstats.Undefined(name)
	}

	s := domainstats.ColumnStats{Name: name, Count: len(values)}
	s.Mean, _ = stats.Mean(values)
	s.Min, _ = stats.Min(values)
	s.Max, _ = stats.Max(values)
	s.Std = math.NaN()
	if len(values) > 1 {
		s.Std, _ = stats.StandardDeviationSample(values)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	s.Q25, s.Median, s.Q75 = Quartiles(sorted)

	mode := firstMode(values)
	s.Mode = &mode
	return s
}

// firstMode returns the most frequent value; among equally frequent values
// the one seen first wins.
func firstMode(values []float64) float64 {
	counts := make(map[float64]int, len(values))
	most := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > most {
			most = counts[v]
		}
	}
	for _, v := range values {
		if counts[v] == most {
			return v
		}
	}
	return math.NaN()
}

// Correlate computes Pearson coefficients between every pair of numeric
// columns, using the rows where both values are present.
func (e *Engine) Correlate(ds *dataset.Dataset) domainstats.CorrelationMatrix {
	names := ds.NumericNames()
	if len(names) == 0 {
		return domainstats.CorrelationMatrix{}
	}

	cols := make([][]float64, len(names))
	for i, name := range names {
		col, _ := ds.Column(name)
		cols[i] = col.Numbers
	}

	m := mat.NewSymDense(len(names), nil)
	for i := range names {
		for j := i; j < len(names); j++ {
			m.SetSym(i, j, pearson(cols[i], cols[j], i == j))
		}
	}
	e.logger.Debug("correlated %d numeric columns over %d rows", len(names), ds.Rows())
	return domainstats.CorrelationMatrix{Columns: names, Values: m}
}

func pearson(a, b []float64, self bool) float64 {
	x := make([]float64, 0, len(a))
	y := make([]float64, 0, len(b))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		x = append(x, a[i])
		y = append(y, b[i])
	}
	if len(x) < 2 {
		return math.NaN()
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return math.NaN()
	}
	if self {
		return 1
	}
	r := stat.Correlation(x, y, nil)
	// keep rounding noise inside [-1, 1]
	return math.Max(-1, math.Min(1, r))
}

// Frequency counts the distinct present values of a column. Numeric
// columns are counted on their exact values and labelled with the report
// number format, or with the exact value when that format would merge
// distinct numbers.
func (e *Engine) Frequency(ds *dataset.Dataset, name string) (domainstats.FrequencyTable, error) {
	col, ok := ds.Column(name)
	if !ok {
		return domainstats.FrequencyTable{}, core.NewColumnError(name)
	}

	var order []string
	counts := make(map[string]int)
	labels := make(map[string]string)
	for i := 0; i < col.Len(); i++ {
		if col.IsMissing(i) {
			continue
		}
		key, label := frequencyKey(col, i)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			labels[key] = label
		}
		counts[key]++
	}

	total := 0
	rows := make([]domainstats.FrequencyRow, len(order))
	for i, key := range order {
		rows[i] = domainstats.FrequencyRow{Value: labels[key], Count: counts[key]}
		total += counts[key]
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	for i := range rows {
		rows[i].Percent = RoundPercent(rows[i].Count, total)
	}

	return domainstats.FrequencyTable{Column: name, Total: total, Rows: rows}, nil
}

// frequencyKey returns the counting key and the display label of row i.
func frequencyKey(col dataset.Column, i int) (key, label string) {
	if !col.IsNumeric() {
		v := col.Format(i)
		return v, v
	}
	v := col.Numbers[i]
	key = strconv.FormatFloat(v, 'g', -1, 64)
	label = dataset.FormatNumber(v)
	if parsed, err := strconv.ParseFloat(label, 64); err != nil || parsed != v {
		label = key
	}
	return key, label
}

// RoundPercent returns count/total*100 rounded to two decimals.
func RoundPercent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*100*100) / 100
}
