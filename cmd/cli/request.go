package main

import (
	"fmt"
	"os"

	"statreport/domain/analysis"
	"statreport/domain/dataset"
	"statreport/internal/errors"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// requestFlags are the selection flags shared by summarize and report.
// Explicit flags override the values read from --request.
type requestFlags struct {
	file        string
	theme       string
	policy      string
	numeric     []string
	categorical []string
	correlation bool
	all         bool
}

func (f *requestFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.file, "request", "r", "", "YAML request file")
	fl.StringVar(&f.theme, "theme", "", "chart theme")
	fl.StringVarP(&f.policy, "policy", "p", "", "missing values: keep, fill_zero or drop_rows")
	fl.StringSliceVarP(&f.numeric, "numeric", "n", nil, "numeric columns to summarize")
	fl.StringSliceVarP(&f.categorical, "categorical", "c", nil, "categorical columns to count")
	fl.BoolVar(&f.correlation, "correlation", false, "include the correlation matrix")
	fl.BoolVar(&f.all, "all", false, "select every column and the correlation matrix")
}

// build merges the request file, the --all shortcut and explicit flags, in
// that order of increasing precedence.
func (f *requestFlags) build(cmd *cobra.Command, ds *dataset.Dataset) (analysis.Request, error) {
	var req analysis.Request
	if f.file != "" {
		r, err := loadRequestFile(f.file)
		if err != nil {
			return req, err
		}
		req = r
	}
	if f.all {
		req.SelectedNumeric = ds.NumericNames()
		req.SelectedCategorical = ds.CategoricalNames()
		req.ShowCorrelation = true
	}

	changed := cmd.Flags().Changed
	if changed("theme") {
		req.Theme = f.theme
	}
	if changed("policy") {
		req.MissingPolicy = dataset.MissingPolicy(f.policy)
	}
	if changed("numeric") {
		req.SelectedNumeric = f.numeric
	}
	if changed("categorical") {
		req.SelectedCategorical = f.categorical
	}
	if changed("correlation") {
		req.ShowCorrelation = f.correlation
	}
	return req, nil
}

// loadRequestFile decodes a YAML request. Unknown keys are rejected so a
// typo does not silently drop a selection.
func loadRequestFile(path string) (analysis.Request, error) {
	var req analysis.Request
	fh, err := os.Open(path)
	if err != nil {
		return req, errors.Wrapf(err, "failed to open request file %s", path)
	}
	defer fh.Close()

	dec := yaml.NewDecoder(fh)
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		return req, errors.InvalidInput(fmt.Sprintf("request file %s: %v", path, err))
	}
	return req, nil
}
