package statistics

import (
	"errors"
	"math"
	"testing"

	"statreport/domain/core"
	"statreport/domain/dataset"
	"statreport/internal/missing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func people() *dataset.Dataset {
	return dataset.MustNew("people",
		dataset.NewNumeric("age", []float64{20, 30, 40, math.NaN()}),
		dataset.NewCategorical("city", []string{"A", "B", "A", "B"}, nil),
	)
}

func TestSummarizeFillZeroScenario(t *testing.T) {
	ds, err := missing.Apply(people(), dataset.PolicyFillZero)
	require.NoError(t, err)

	e := NewEngine(nil)
	rows := e.Summarize(ds, []string{"age"})
	require.Len(t, rows, 1)

	s := rows[0]
	assert.Equal(t, "age", s.Name)
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 22.5, s.Mean, 1e-12)
	assert.InDelta(t, 17.0782, s.Std, 1e-4)
	assert.Equal(t, 0.0, s.Min)
	assert.Equal(t, 40.0, s.Max)
	assert.InDelta(t, 15.0, s.Q25, 1e-12)
	assert.InDelta(t, 25.0, s.Median, 1e-12)
	assert.InDelta(t, 32.5, s.Q75, 1e-12)
	require.True(t, s.HasMode())
	assert.Equal(t, 20.0, *s.Mode)

	freq, err := e.Frequency(ds, "city")
	require.NoError(t, err)
	require.Len(t, freq.Rows, 2)
	assert.Equal(t, "A", freq.Rows[0].Value)
	assert.Equal(t, 2, freq.Rows[0].Count)
	assert.Equal(t, 50.0, freq.Rows[0].Percent)
	assert.Equal(t, "B", freq.Rows[1].Value)
	assert.Equal(t, 50.0, freq.Rows[1].Percent)
}

func TestSummarizeDropRowsScenario(t *testing.T) {
	ds, err := missing.Apply(people(), dataset.PolicyDropRows)
	require.NoError(t, err)

	rows := NewEngine(nil).Summarize(ds, []string{"age"})
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Count)
	assert.InDelta(t, 30.0, rows[0].Mean, 1e-12)
	assert.InDelta(t, 10.0, rows[0].Std, 1e-12)
}

func TestSummarizeCountMatchesPresentValues(t *testing.T) {
	ds := people()
	rows := NewEngine(nil).Summarize(ds, []string{"age"})
	require.Len(t, rows, 1)

	age, _ := ds.Column("age")
	assert.Equal(t, age.Len()-age.MissingCount(), rows[0].Count)
}

func TestSummarizeSelectionOrderAndSkips(t *testing.T) {
	ds := dataset.MustNew("x",
		dataset.NewNumeric("a", []float64{1, 2}),
		dataset.NewNumeric("b", []float64{3, 4}),
		dataset.NewCategorical("c", []string{"x", "y"}, nil),
	)
	rows := NewEngine(nil).Summarize(ds, []string{"b", "missing", "c", "a"})
	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].Name)
	assert.Equal(t, "a", rows[1].Name)
}

func TestSummarizeAllMissingColumn(t *testing.T) {
	ds := dataset.MustNew("x",
		dataset.NewNumeric("empty", []float64{math.NaN(), math.NaN()}),
	)
	rows := NewEngine(nil).Summarize(ds, []string{"empty"})
	require.Len(t, rows, 1)

	s := rows[0]
	assert.Equal(t, 0, s.Count)
	assert.False(t, s.HasMode())
	for _, v := range []float64{s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max} {
		assert.True(t, math.IsNaN(v))
	}
}

func TestSummarizeSingleValue(t *testing.T) {
	s := Describe("one", []float64{7})
	assert.Equal(t, 1, s.Count)
	assert.True(t, math.IsNaN(s.Std))
	assert.Equal(t, 7.0, s.Median)
	assert.Equal(t, 7.0, *s.Mode)
}

func TestModeFirstEncounteredTie(t *testing.T) {
	s := Describe("m", []float64{5, 3, 3, 5, 1})
	assert.Equal(t, 5.0, *s.Mode)

	s = Describe("m", []float64{1, 2, 2})
	assert.Equal(t, 2.0, *s.Mode)
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Quantile(sorted, tt.q), 1e-12, "q=%v", tt.q)
	}
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func TestCorrelateSymmetricWithUnitDiagonal(t *testing.T) {
	ds := dataset.MustNew("x",
		dataset.NewNumeric("a", []float64{1, 2, 3, 4, 5}),
		dataset.NewNumeric("b", []float64{2, 4, 5, 4, 5}),
		dataset.NewNumeric("c", []float64{5, 4, 3, 2, 1}),
		dataset.NewCategorical("d", []string{"p", "q", "r", "s", "t"}, nil),
	)
	m := NewEngine(nil).Correlate(ds)
	require.Equal(t, []string{"a", "b", "c"}, m.Columns)

	for i := 0; i < m.Len(); i++ {
		assert.Equal(t, 1.0, m.At(i, i))
		for j := 0; j < m.Len(); j++ {
			assert.Equal(t, m.At(i, j), m.At(j, i))
		}
	}
	ac, ok := m.Lookup("a", "c")
	require.True(t, ok)
	assert.InDelta(t, -1.0, ac, 1e-12)

	ab, _ := m.Lookup("a", "b")
	assert.InDelta(t, 0.7745966, ab, 1e-6)
}

func TestCorrelatePairwiseAndUndefined(t *testing.T) {
	nan := math.NaN()
	ds := dataset.MustNew("x",
		dataset.NewNumeric("a", []float64{1, 2, 3, nan}),
		dataset.NewNumeric("b", []float64{2, 4, nan, 8}),
		dataset.NewNumeric("flat", []float64{3, 3, 3, 3}),
		dataset.NewNumeric("sparse", []float64{nan, nan, 1, nan}),
	)
	m := NewEngine(nil).Correlate(ds)

	ab, _ := m.Lookup("a", "b")
	assert.InDelta(t, 1.0, ab, 1e-12)

	af, _ := m.Lookup("a", "flat")
	assert.True(t, math.IsNaN(af))
	ff, _ := m.Lookup("flat", "flat")
	assert.True(t, math.IsNaN(ff))

	as, _ := m.Lookup("a", "sparse")
	assert.True(t, math.IsNaN(as))
}

func TestCorrelateNoNumericColumns(t *testing.T) {
	ds := dataset.MustNew("x", dataset.NewCategorical("c", []string{"a"}, nil))
	m := NewEngine(nil).Correlate(ds)
	assert.True(t, m.IsEmpty())
}

func TestFrequencyOrderingAndPercent(t *testing.T) {
	ds := dataset.MustNew("x",
		dataset.NewCategorical("fruit", []string{"pear", "apple", "", "apple", "fig", "pear", "kiwi"}, nil),
	)
	freq, err := NewEngine(nil).Frequency(ds, "fruit")
	require.NoError(t, err)

	assert.Equal(t, 6, freq.Total)
	values := make([]string, len(freq.Rows))
	for i, r := range freq.Rows {
		values[i] = r.Value
	}
	assert.Equal(t, []string{"pear", "apple", "fig", "kiwi"}, values)
	assert.Equal(t, 33.33, freq.Rows[0].Percent)
	assert.Equal(t, 16.67, freq.Rows[2].Percent)
	assert.InDelta(t, 100.0, freq.PercentSum(), 0.05)
}

func TestFrequencyNumericColumn(t *testing.T) {
	freq, err := NewEngine(nil).Frequency(people(), "age")
	require.NoError(t, err)
	assert.Equal(t, 3, freq.Total)
	assert.Equal(t, "20", freq.Rows[0].Value)
}

func TestFrequencyNumericKeepsDistinctSmallValues(t *testing.T) {
	ds := dataset.MustNew("tiny",
		dataset.NewNumeric("rate", []float64{0.00001, 0.00002, 0.00001, 2.5, 2.5, 2.5}),
	)
	freq, err := NewEngine(nil).Frequency(ds, "rate")
	require.NoError(t, err)
	require.Len(t, freq.Rows, 3)

	assert.Equal(t, "2.5", freq.Rows[0].Value)
	assert.Equal(t, 3, freq.Rows[0].Count)
	assert.Equal(t, "1e-05", freq.Rows[1].Value)
	assert.Equal(t, 2, freq.Rows[1].Count)
	assert.Equal(t, "2e-05", freq.Rows[2].Value)
	assert.Equal(t, 1, freq.Rows[2].Count)
}

func TestFrequencyUnknownColumn(t *testing.T) {
	_, err := NewEngine(nil).Frequency(people(), "zip")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrColumnNotFound))
	assert.True(t, core.IsNotFoundError(err))
}

func TestEmptyDataset(t *testing.T) {
	ds := dataset.MustNew("empty")
	e := NewEngine(nil)

	assert.Empty(t, e.Summarize(ds, nil))
	assert.True(t, e.Correlate(ds).IsEmpty())

	rows := dataset.MustNew("no-rows",
		dataset.NewNumeric("a", []float64{}),
		dataset.NewCategorical("c", []string{}, nil),
	)
	freq, err := e.Frequency(rows, "c")
	require.NoError(t, err)
	assert.Empty(t, freq.Rows)
	assert.Equal(t, 0.0, freq.PercentSum())

	summary := e.Summarize(rows, []string{"a"})
	require.Len(t, summary, 1)
	assert.Equal(t, 0, summary[0].Count)
}
