package app

import (
	"fmt"
	"strconv"

	"statreport/domain/dataset"
	"statreport/domain/report"
	"statreport/domain/stats"
)

// SummaryTable lays out numeric summaries, one row per column.
func SummaryTable(rows []stats.ColumnStats) report.Table {
	t := report.Table{Header: append([]string(nil), summaryHeader...)}
	for _, s := range rows {
		mode := dataset.NotAvailable
		if s.HasMode() {
			mode = dataset.FormatNumber(*s.Mode)
		}
		t.Rows = append(t.Rows, []string{
			s.Name,
			strconv.Itoa(s.Count),
			dataset.FormatNumber(s.Mean),
			dataset.FormatNumber(s.Std),
			dataset.FormatNumber(s.Min),
			dataset.FormatNumber(s.Q25),
			dataset.FormatNumber(s.Median),
			dataset.FormatNumber(s.Q75),
			dataset.FormatNumber(s.Max),
			mode,
		})
	}
	return t
}

// CorrelationTable lays out the matrix with column names on both axes.
func CorrelationTable(m stats.CorrelationMatrix) report.Table {
	t := report.Table{Header: append([]string{""}, m.Columns...)}
	for i, name := range m.Columns {
		row := make([]string, 0, m.Len()+1)
		row = append(row, name)
		for j := range m.Columns {
			row = append(row, dataset.FormatNumber(m.At(i, j)))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// FrequencyTable lays out value counts and percentages.
func FrequencyTable(f stats.FrequencyTable) report.Table {
	t := report.Table{Header: []string{f.Column, HeaderFrequency, HeaderPercent}}
	for _, r := range f.Rows {
		t.Rows = append(t.Rows, []string{r.Value, strconv.Itoa(r.Count), fmt.Sprintf("%.2f", r.Percent)})
	}
	return t
}
