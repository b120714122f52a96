package analysis

import (
	"fmt"
	"strings"

	"statreport/domain/core"
	"statreport/domain/dataset"
)

// Request is everything the pipeline needs besides the dataset itself.
// Pipelines are pure functions of a Request and a Dataset.
type Request struct {
	Theme               string                `json:"theme" yaml:"theme"`
	MissingPolicy       dataset.MissingPolicy `json:"missing_policy" yaml:"missing_policy"`
	SelectedNumeric     []string              `json:"numeric" yaml:"numeric"`
	SelectedCategorical []string              `json:"categorical" yaml:"categorical"`
	ShowCorrelation     bool                  `json:"show_correlation" yaml:"show_correlation"`
}

// Normalize returns a copy with trimmed, de-duplicated selections and a
// canonical policy. Selection order is preserved.
func (r Request) Normalize() (Request, error) {
	policy, err := dataset.ParseMissingPolicy(string(r.MissingPolicy))
	if err != nil {
		return Request{}, err
	}
	return Request{
		Theme:               strings.TrimSpace(r.Theme),
		MissingPolicy:       policy,
		SelectedNumeric:     dedupe(r.SelectedNumeric),
		SelectedCategorical: dedupe(r.SelectedCategorical),
		ShowCorrelation:     r.ShowCorrelation,
	}, nil
}

// Validate checks that every selected column exists with the expected kind.
func (r Request) Validate(ds *dataset.Dataset) error {
	var problems []string
	check := func(names []string, kind dataset.Kind) {
		for _, name := range names {
			col, ok := ds.Column(name)
			switch {
			case !ok:
				problems = append(problems, fmt.Sprintf("%q does not exist", name))
			case col.Kind != kind:
				problems = append(problems, fmt.Sprintf("%q is %s, not %s", name, col.Kind, kind))
			}
		}
	}
	check(r.SelectedNumeric, dataset.KindNumeric)
	check(r.SelectedCategorical, dataset.KindCategorical)
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", core.ErrColumnKind, strings.Join(problems, "; "))
	}
	return nil
}

// IsEmpty reports whether the request would produce no report sections.
func (r Request) IsEmpty() bool {
	return len(r.SelectedNumeric) == 0 && len(r.SelectedCategorical) == 0 && !r.ShowCorrelation
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
