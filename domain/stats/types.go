package stats

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ColumnStats summarises one numeric column. NaN marks an undefined field;
// Mode is nil when the column has no values.
type ColumnStats struct {
	Name   string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
	Mode   *float64
}

// Undefined returns a row for a column without any numeric values.
func Undefined(name string) ColumnStats {
	nan := math.NaN()
	return ColumnStats{
		Name: name, Mean: nan, Std: nan, Min: nan,
		Q25: nan, Median: nan, Q75: nan, Max: nan,
	}
}

// HasMode reports whether a modal value was found.
func (s ColumnStats) HasMode() bool { return s.Mode != nil }

// FrequencyRow is one distinct value of a categorical column.
type FrequencyRow struct {
	Value   string  `json:"value"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// FrequencyTable lists distinct values by descending count; equal counts
// keep the order in which the values were first seen.
type FrequencyTable struct {
	Column string         `json:"column"`
	Total  int            `json:"total"`
	Rows   []FrequencyRow `json:"rows"`
}

// PercentSum adds the rounded percentages, mostly useful as a sanity check.
func (t FrequencyTable) PercentSum() float64 {
	sum := 0.0
	for _, r := range t.Rows {
		sum += r.Percent
	}
	return sum
}

// CorrelationMatrix holds Pearson coefficients between numeric columns.
// Values is symmetric by construction; undefined pairs hold NaN.
type CorrelationMatrix struct {
	Columns []string
	Values  *mat.SymDense
}

// Len returns the matrix order.
func (m CorrelationMatrix) Len() int { return len(m.Columns) }

// IsEmpty reports whether there were no numeric columns to correlate.
func (m CorrelationMatrix) IsEmpty() bool { return len(m.Columns) == 0 || m.Values == nil }

// At returns the coefficient for columns i and j.
func (m CorrelationMatrix) At(i, j int) float64 {
	if m.Values == nil {
		return math.NaN()
	}
	return m.Values.At(i, j)
}

// Lookup returns the coefficient for two named columns.
func (m CorrelationMatrix) Lookup(a, b string) (float64, bool) {
	i, j := -1, -1
	for k, name := range m.Columns {
		if name == a {
			i = k
		}
		if name == b {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return math.NaN(), false
	}
	return m.At(i, j), true
}

// Rows copies the matrix into a row-major slice.
func (m CorrelationMatrix) Rows() [][]float64 {
	n := m.Len()
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}
