package main

import (
	"io"
	"strconv"

	"statreport/app"
	"statreport/domain/analysis"
	"statreport/domain/dataset"
	"statreport/domain/report"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var heading = color.New(color.FgYellow, color.Bold)

func printTable(w io.Writer, title string, t report.Table) {
	heading.Fprintf(w, "\n%s\n", title)

	table := tablewriter.NewWriter(w)
	table.SetHeader(t.Header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(t.Rows)
	table.Render()
}

func printColumns(w io.Writer, ds *dataset.Dataset, head int) {
	t := report.Table{Header: []string{"Column", "Kind", "Missing"}}
	missing := ds.MissingCounts()
	for i, col := range ds.Columns() {
		t.Rows = append(t.Rows, []string{col.Name, string(col.Kind), strconv.Itoa(missing[i].Missing)})
	}
	printTable(w, ds.Name()+" ("+strconv.Itoa(ds.Rows())+" rows)", t)

	if head > 0 {
		printTable(w, "First rows", report.Table{Header: ds.Names(), Rows: ds.Head(head)})
	}
}

func printResult(w io.Writer, r *analysis.Result) {
	if len(r.Summaries) > 0 {
		printTable(w, app.TitleNumericStats, app.SummaryTable(r.Summaries))
	}
	if r.Correlation != nil {
		printTable(w, app.TitleCorrelation, app.CorrelationTable(*r.Correlation))
	}
	for _, f := range r.Frequencies {
		printTable(w, app.FrequencyTitle(f.Column), app.FrequencyTable(f))
	}
}
