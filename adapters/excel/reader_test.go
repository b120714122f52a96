package excel

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"statreport/domain/core"
	"statreport/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// workbook writes rows into sheet, skipping nil cells.
func workbook(t *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestLoadExcel(t *testing.T) {
	buf := workbook(t, "Sheet1", [][]interface{}{
		{"age", "city"},
		{20, "A"},
		{30, "B"},
		{40.5, "A"},
		{nil, "B"},
	})

	ds, err := NewDataReader(DefaultExcelConfig()).Load(context.Background(), "people.xlsx", buf)
	require.NoError(t, err)
	assert.Equal(t, "people.xlsx", ds.Name())
	assert.Equal(t, 4, ds.Rows())
	assert.Equal(t, []string{"age"}, ds.NumericNames())
	assert.Equal(t, []string{"city"}, ds.CategoricalNames())

	age, _ := ds.Column("age")
	assert.Equal(t, []float64{20, 30, 40.5}, age.Numbers[:3])
	assert.True(t, math.IsNaN(age.Numbers[3]))
}

func TestLoadExcelConfiguredSheet(t *testing.T) {
	buf := workbook(t, "Data", [][]interface{}{
		{"score"},
		{1.5},
	})
	cfg := DefaultExcelConfig()
	cfg.SheetName = "Data"

	ds, err := NewDataReader(cfg).Load(context.Background(), "scores.xlsx", buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"score"}, ds.NumericNames())

	cfg.SheetName = "Missing"
	_, err = NewDataReader(cfg).Load(context.Background(), "scores.xlsx", workbook(t, "Sheet1", [][]interface{}{{"x"}}))
	assert.True(t, errors.Is(err, core.ErrMalformedInput))
}

func TestLoadCSV(t *testing.T) {
	src := "\ufeffage, city ,score\n20,A,1\n30,B,NA\n\n,A,x\n"
	ds, err := NewDataReader(DefaultExcelConfig()).Load(context.Background(), "people.csv", strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"age", "city", "score"}, ds.Names())
	assert.Equal(t, 3, ds.Rows())
	assert.Equal(t, []string{"age"}, ds.NumericNames())
	assert.Equal(t, []string{"city", "score"}, ds.CategoricalNames())

	score, _ := ds.Column("score")
	assert.True(t, score.IsMissing(1))
	assert.Equal(t, "x", score.Labels[2])

	missing := ds.MissingCounts()
	assert.Equal(t, dataset.MissingCount{Column: "age", Missing: 1}, missing[0])
}

func TestLoadCSVShortRowsAndHeaders(t *testing.T) {
	src := "a,,a,a\n1,2\n"
	ds, err := NewDataReader(DefaultExcelConfig()).Load(context.Background(), "x.csv", strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "Unnamed: 1", "a.1", "a.2"}, ds.Names())

	c, _ := ds.Column("a.2")
	assert.Equal(t, dataset.KindNumeric, c.Kind)
	assert.Equal(t, 1, c.MissingCount())
}

func TestLoadHeaderOnly(t *testing.T) {
	ds, err := NewDataReader(DefaultExcelConfig()).Load(context.Background(), "x.csv", strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Rows())
	assert.True(t, ds.IsEmpty())
}

func TestLoadMalformed(t *testing.T) {
	r := NewDataReader(DefaultExcelConfig())
	tests := []struct {
		name string
		body string
	}{
		{"empty.csv", ""},
		{"broken.xlsx", "this is not a zip archive"},
		{"notes.txt", "a,b\n1,2\n"},
	}
	for _, tt := range tests {
		_, err := r.Load(context.Background(), tt.name, strings.NewReader(tt.body))
		require.Error(t, err, tt.name)
		assert.True(t, errors.Is(err, core.ErrMalformedInput), tt.name)
		assert.True(t, core.IsInputError(err), tt.name)
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDataReader(DefaultExcelConfig()).Load(ctx, "x.csv", strings.NewReader("a\n1\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("v\n1\n2\n"), 0o644))

	ds, err := NewDataReader(DefaultExcelConfig()).LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "data.csv", ds.Name())
	assert.Equal(t, 2, ds.Rows())

	_, err = NewDataReader(DefaultExcelConfig()).LoadFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestClassifyThreshold(t *testing.T) {
	cells := []string{"1", "2", "3", "x"}

	strict := NewTypeCoercer(DefaultCoercionConfig())
	assert.Equal(t, dataset.KindCategorical, strict.Classify(cells))
	assert.Equal(t, dataset.KindNumeric, strict.Classify([]string{"", "NaN", "null"}))

	loose := NewTypeCoercer(CoercionConfig{NumericThreshold: 0.75})
	col := loose.Column("n", cells)
	assert.Equal(t, dataset.KindNumeric, col.Kind)
	assert.True(t, col.IsMissing(3))
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a.XLSX"))
	assert.True(t, Supported("b.csv"))
	assert.False(t, Supported("c.xls"))
}

func TestWriteReadRoundTrip(t *testing.T) {
	ds := dataset.MustNew("orders",
		dataset.NewNumeric("total", []float64{12.5, math.NaN(), 40}),
		dataset.NewCategorical("region", []string{"north", "south", ""}, nil),
	)
	reader := NewDataReader(DefaultExcelConfig())

	for _, name := range []string{"orders.xlsx", "orders.csv"} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteFile(&buf, name, ds))

			got, err := reader.Load(context.Background(), name, &buf)
			require.NoError(t, err)
			assert.Equal(t, []string{"total"}, got.NumericNames())
			assert.Equal(t, []string{"region"}, got.CategoricalNames())
			assert.Equal(t, ds.Head(3), got.Head(3))
			assert.Equal(t, ds.MissingCounts(), got.MissingCounts())
		})
	}

	var buf bytes.Buffer
	assert.True(t, errors.Is(WriteFile(&buf, "orders.txt", ds), core.ErrUnsupportedInput))
}
