// Package missing applies a missing-value policy to a dataset before any
// statistics are computed.
package missing

import (
	"math"

	"statreport/domain/dataset"
)

// ZeroLabel is what fill_zero writes into absent categorical cells.
const ZeroLabel = "0"

// Apply returns a new dataset with the policy applied. The input is never
// modified; PolicyKeep returns the input itself.
func Apply(ds *dataset.Dataset, policy dataset.MissingPolicy) (*dataset.Dataset, error) {
	policy, err := dataset.ParseMissingPolicy(string(policy))
	if err != nil {
		return nil, err
	}
	switch policy {
	case dataset.PolicyFillZero:
		return fillZero(ds)
	case dataset.PolicyDropRows:
		return dropRows(ds)
	}
	return ds, nil
}

func fillZero(ds *dataset.Dataset) (*dataset.Dataset, error) {
	cols := ds.Columns()
	for i, col := range cols {
		if col.IsNumeric() {
			values := make([]float64, len(col.Numbers))
			for r, v := range col.Numbers {
				if math.IsNaN(v) {
					v = 0
				}
				values[r] = v
			}
			cols[i] = dataset.NewNumeric(col.Name, values)
			continue
		}

		labels := make([]string, len(col.Labels))
		valid := make([]bool, len(col.Labels))
		for r, l := range col.Labels {
			if !col.Valid[r] {
				l = ZeroLabel
			}
			labels[r] = l
			valid[r] = true
		}
		cols[i] = dataset.NewCategorical(col.Name, labels, valid)
	}
	return dataset.New(ds.Name(), cols...)
}

// dropRows keeps only the rows in which every column has a value.
func dropRows(ds *dataset.Dataset) (*dataset.Dataset, error) {
	cols := ds.Columns()
	keep := make([]int, 0, ds.Rows())
	for r := 0; r < ds.Rows(); r++ {
		complete := true
		for _, col := range cols {
			if col.IsMissing(r) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, r)
		}
	}

	for i, col := range cols {
		if col.IsNumeric() {
			values := make([]float64, len(keep))
			for k, r := range keep {
				values[k] = col.Numbers[r]
			}
			cols[i] = dataset.NewNumeric(col.Name, values)
			continue
		}

		labels := make([]string, len(keep))
		valid := make([]bool, len(keep))
		for k, r := range keep {
			labels[k] = col.Labels[r]
			valid[k] = col.Valid[r]
		}
		cols[i] = dataset.NewCategorical(col.Name, labels, valid)
	}
	return dataset.New(ds.Name(), cols...)
}
