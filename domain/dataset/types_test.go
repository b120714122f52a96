package dataset

import (
	"errors"
	"math"
	"testing"

	"statreport/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsRaggedColumns(t *testing.T) {
	_, err := New("bad",
		NewNumeric("age", []float64{1, 2, 3}),
		NewCategorical("city", []string{"A", "B"}, nil),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrRaggedDataset))
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := New("dup",
		NewNumeric("age", []float64{1}),
		NewNumeric("age", []float64{2}),
	)
	assert.Error(t, err)
}

func TestDatasetAccessors(t *testing.T) {
	ds := MustNew("people",
		NewNumeric("age", []float64{20, 30, 40, math.NaN()}),
		NewCategorical("city", []string{"A", "", "A", "B"}, nil),
		NewNumeric("score", []float64{1.5, 2, 2.25, 3}),
	)

	assert.Equal(t, 4, ds.Rows())
	assert.Equal(t, 3, ds.Width())
	assert.False(t, ds.IsEmpty())
	assert.Equal(t, []string{"age", "score"}, ds.NumericNames())
	assert.Equal(t, []string{"city"}, ds.CategoricalNames())
	assert.Equal(t, []MissingCount{
		{Column: "age", Missing: 1},
		{Column: "city", Missing: 1},
		{Column: "score", Missing: 0},
	}, ds.MissingCounts())

	age, ok := ds.Column("age")
	require.True(t, ok)
	assert.Equal(t, []float64{20, 30, 40}, age.Present())

	_, ok = ds.Column("height")
	assert.False(t, ok)

	assert.Equal(t, [][]string{
		{"20", "A", "1.5"},
		{"30", "", "2"},
	}, ds.Head(2))
	assert.Len(t, ds.Head(100), 4)
}

func TestEmptyDataset(t *testing.T) {
	ds := MustNew("empty")
	assert.True(t, ds.IsEmpty())
	assert.Equal(t, 0, ds.Rows())
	assert.Empty(t, ds.Head(5))
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		20:          "20",
		22.5:        "22.5",
		12.90994449: "12.9099",
		-0.00001:    "0",
		-3.25:       "-3.25",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatNumber(in), "FormatNumber(%v)", in)
	}
	assert.Equal(t, NotAvailable, FormatNumber(math.NaN()))
	assert.Equal(t, "inf", FormatNumber(math.Inf(1)))
}

func TestParseMissingPolicy(t *testing.T) {
	for in, want := range map[string]MissingPolicy{
		"":          PolicyKeep,
		"keep":      PolicyKeep,
		"zero":      PolicyFillZero,
		"fill_zero": PolicyFillZero,
		"DROP":      PolicyDropRows,
		"drop-rows": PolicyDropRows,
	} {
		got, err := ParseMissingPolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMissingPolicy("mean")
	assert.True(t, errors.Is(err, core.ErrInvalidPolicy))
}
