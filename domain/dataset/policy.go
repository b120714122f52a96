package dataset

import (
	"fmt"
	"strings"

	"statreport/domain/core"
)

// MissingPolicy selects how absent cells are treated before analysis.
type MissingPolicy string

const (
	PolicyKeep     MissingPolicy = "keep"
	PolicyFillZero MissingPolicy = "fill_zero"
	PolicyDropRows MissingPolicy = "drop_rows"
)

// Policies lists the accepted policies in display order.
func Policies() []MissingPolicy {
	return []MissingPolicy{PolicyKeep, PolicyFillZero, PolicyDropRows}
}

// ParseMissingPolicy accepts the canonical names plus a few aliases. An
// empty string means PolicyKeep.
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep", "none", "nan":
		return PolicyKeep, nil
	case "fill_zero", "fill-zero", "zero", "fill":
		return PolicyFillZero, nil
	case "drop_rows", "drop-rows", "drop", "dropna":
		return PolicyDropRows, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrInvalidPolicy, s)
}

func (p MissingPolicy) String() string { return string(p) }
