package dataset

import (
	"fmt"
	"math"

	"statreport/domain/core"
)

// Kind is the semantic type of a column, decided once at load time.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
)

// Column is a tagged column: Numeric columns carry Numbers (NaN marks an
// absent cell), Categorical columns carry Labels with a Valid mask.
type Column struct {
	Name    string    `json:"name"`
	Kind    Kind      `json:"kind"`
	Numbers []float64 `json:"-"`
	Labels  []string  `json:"-"`
	Valid   []bool    `json:"-"`
}

// NewNumeric builds a numeric column. NaN values are treated as missing.
func NewNumeric(name string, values []float64) Column {
	return Column{Name: name, Kind: KindNumeric, Numbers: values}
}

// NewCategorical builds a categorical column. valid may be nil, in which
// case empty strings are treated as missing.
func NewCategorical(name string, labels []string, valid []bool) Column {
	if valid == nil {
		valid = make([]bool, len(labels))
		for i, l := range labels {
			valid[i] = l != ""
		}
	}
	return Column{Name: name, Kind: KindCategorical, Labels: labels, Valid: valid}
}

// Len returns the number of rows in the column.
func (c Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Numbers)
	}
	return len(c.Labels)
}

func (c Column) IsNumeric() bool     { return c.Kind == KindNumeric }
func (c Column) IsCategorical() bool { return c.Kind == KindCategorical }

// IsMissing reports whether row i holds no value.
func (c Column) IsMissing(i int) bool {
	if c.Kind == KindNumeric {
		return math.IsNaN(c.Numbers[i])
	}
	return !c.Valid[i]
}

// MissingCount returns the number of absent cells.
func (c Column) MissingCount() int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			n++
		}
	}
	return n
}

// Present returns the non-missing numeric values in row order. It returns
// nil for categorical columns.
func (c Column) Present() []float64 {
	if c.Kind != KindNumeric {
		return nil
	}
	out := make([]float64, 0, len(c.Numbers))
	for _, v := range c.Numbers {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Format renders row i as display text. Missing cells render as "".
func (c Column) Format(i int) string {
	if c.IsMissing(i) {
		return ""
	}
	if c.Kind == KindNumeric {
		return FormatNumber(c.Numbers[i])
	}
	return c.Labels[i]
}

// Dataset is an ordered collection of equally long named columns. It is
// never mutated after construction; transforms build a new Dataset.
type Dataset struct {
	name    string
	columns []Column
	index   map[string]int
	rows    int
}

// New validates the columns and builds a Dataset.
func New(name string, columns ...Column) (*Dataset, error) {
	ds := &Dataset{
		name:    name,
		columns: make([]Column, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	copy(ds.columns, columns)

	for i, col := range ds.columns {
		if _, dup := ds.index[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		if col.Kind == KindCategorical && len(col.Valid) != len(col.Labels) {
			return nil, fmt.Errorf("%w: column %q has %d labels but %d validity flags",
				core.ErrRaggedDataset, col.Name, len(col.Labels), len(col.Valid))
		}
		if i == 0 {
			ds.rows = col.Len()
		} else if col.Len() != ds.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d",
				core.ErrRaggedDataset, col.Name, col.Len(), ds.rows)
		}
		ds.index[col.Name] = i
	}
	return ds, nil
}

// MustNew is New for fixtures and tests; it panics on invalid input.
func MustNew(name string, columns ...Column) *Dataset {
	ds, err := New(name, columns...)
	if err != nil {
		panic(err)
	}
	return ds
}

func (d *Dataset) Name() string { return d.name }

// Rows returns the row count shared by every column.
func (d *Dataset) Rows() int { return d.rows }

// Width returns the number of columns.
func (d *Dataset) Width() int { return len(d.columns) }

// IsEmpty reports whether the dataset has no columns or no rows.
func (d *Dataset) IsEmpty() bool { return len(d.columns) == 0 || d.rows == 0 }

// Columns returns the columns in their original order.
func (d *Dataset) Columns() []Column {
	out := make([]Column, len(d.columns))
	copy(out, d.columns)
	return out
}

// Column looks a column up by name.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

// Names returns all column names in order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// NumericNames returns the numeric column names in dataset order.
func (d *Dataset) NumericNames() []string { return d.namesOf(KindNumeric) }

// CategoricalNames returns the categorical column names in dataset order.
func (d *Dataset) CategoricalNames() []string { return d.namesOf(KindCategorical) }

func (d *Dataset) namesOf(kind Kind) []string {
	var names []string
	for _, c := range d.columns {
		if c.Kind == kind {
			names = append(names, c.Name)
		}
	}
	return names
}

// MissingCount pairs a column with its number of absent cells.
type MissingCount struct {
	Column  string `json:"column"`
	Missing int    `json:"missing"`
}

// MissingCounts reports absent cells per column, in column order.
func (d *Dataset) MissingCounts() []MissingCount {
	out := make([]MissingCount, len(d.columns))
	for i, c := range d.columns {
		out[i] = MissingCount{Column: c.Name, Missing: c.MissingCount()}
	}
	return out
}

// Head returns up to n rows formatted as text, one slice per row.
func (d *Dataset) Head(n int) [][]string {
	if n > d.rows {
		n = d.rows
	}
	if n < 0 {
		n = 0
	}
	out := make([][]string, n)
	for r := 0; r < n; r++ {
		row := make([]string, len(d.columns))
		for c, col := range d.columns {
			row[c] = col.Format(r)
		}
		out[r] = row
	}
	return out
}
