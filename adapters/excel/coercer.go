package excel

import (
	"math"
	"strconv"
	"strings"

	"statreport/domain/dataset"
)

// CoercionConfig defines how raw cells become typed columns
type CoercionConfig struct {
	NumericThreshold float64  `json:"numeric_threshold"` // share of present cells that must parse as numbers
	MissingTokens    []string `json:"missing_tokens"`    // cell texts read as "no value"
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NumericThreshold: 1.0,
		MissingTokens:    []string{"", "NaN", "nan", "NA", "N/A", "n/a", "null", "NULL", "#N/A", "None"},
	}
}

// TypeCoercer decides column kinds and converts cells
type TypeCoercer struct {
	config  CoercionConfig
	missing map[string]bool
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	if config.NumericThreshold <= 0 || config.NumericThreshold > 1 {
		config.NumericThreshold = 1.0
	}
	missing := make(map[string]bool, len(config.MissingTokens)+1)
	missing[""] = true
	for _, tok := range config.MissingTokens {
		missing[strings.TrimSpace(tok)] = true
	}
	return &TypeCoercer{config: config, missing: missing}
}

// IsMissing reports whether a cell holds no value.
func (c *TypeCoercer) IsMissing(cell string) bool {
	return c.missing[strings.TrimSpace(cell)]
}

// ParseNumber parses a present cell as a finite or infinite float.
func (c *TypeCoercer) ParseNumber(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Classify decides the kind of one column. A column is numeric when the
// share of present cells that parse as numbers reaches the threshold; a
// column without any present cell is numeric.
func (c *TypeCoercer) Classify(cells []string) dataset.Kind {
	present, numeric := 0, 0
	for _, cell := range cells {
		if c.IsMissing(cell) {
			continue
		}
		present++
		if _, ok := c.ParseNumber(cell); ok {
			numeric++
		}
	}
	if present == 0 {
		return dataset.KindNumeric
	}
	if float64(numeric)/float64(present) >= c.config.NumericThreshold {
		return dataset.KindNumeric
	}
	return dataset.KindCategorical
}

// Column converts raw cells into a typed column. In a numeric column,
// cells that do not parse become missing.
func (c *TypeCoercer) Column(name string, cells []string) dataset.Column {
	if c.Classify(cells) == dataset.KindNumeric {
		values := make([]float64, len(cells))
		for i, cell := range cells {
			values[i] = math.NaN()
			if c.IsMissing(cell) {
				continue
			}
			if v, ok := c.ParseNumber(cell); ok {
				values[i] = v
			}
		}
		return dataset.NewNumeric(name, values)
	}

	labels := make([]string, len(cells))
	valid := make([]bool, len(cells))
	for i, cell := range cells {
		if c.IsMissing(cell) {
			continue
		}
		labels[i] = strings.TrimSpace(cell)
		valid[i] = true
	}
	return dataset.NewCategorical(name, labels, valid)
}
