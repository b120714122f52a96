package report

import "strings"

// SectionKind distinguishes table sections from image sections.
type SectionKind string

const (
	SectionTable SectionKind = "table"
	SectionImage SectionKind = "image"
)

// Table is tabular section content. The first column is the row label.
type Table struct {
	Header []string
	Rows   [][]string
}

// Width returns the number of columns, counting the label column.
func (t Table) Width() int {
	w := len(t.Header)
	for _, r := range t.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// Truncate keeps the first n columns of the header and of every row.
func (t Table) Truncate(n int) Table {
	out := Table{
		Header: truncateRow(t.Header, n),
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = truncateRow(r, n)
	}
	return out
}

func truncateRow(row []string, n int) []string {
	if len(row) > n {
		row = row[:n]
	}
	out := make([]string, len(row))
	copy(out, row)
	return out
}

// Image is a raster section drawn into a fixed box.
type Image struct {
	Name   string
	PNG    []byte
	Width  float64
	Height float64
}

// Section is one entry of a report, either a table or an image.
type Section struct {
	Kind  SectionKind
	Title string
	Table *Table
	Image *Image
}

// ChartKind names the chart types the renderer produces.
type ChartKind string

const (
	ChartHistogram ChartKind = "histogram"
	ChartBoxPlot   ChartKind = "boxplot"
	ChartBar       ChartKind = "bar"
	ChartHeatmap   ChartKind = "heatmap"
)

// ParseChartKind maps a path segment onto a chart kind.
func ParseChartKind(s string) (ChartKind, bool) {
	switch ChartKind(strings.ToLower(s)) {
	case ChartHistogram:
		return ChartHistogram, true
	case ChartBoxPlot, "box":
		return ChartBoxPlot, true
	case ChartBar:
		return ChartBar, true
	case ChartHeatmap:
		return ChartHeatmap, true
	}
	return "", false
}

// CorrelationMatrixName is the base name of the heatmap download.
const CorrelationMatrixName = "correlation_matrix"

// DocumentFileName is the download name of the assembled report.
const DocumentFileName = "istatistik_raporu.pdf"

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", "\x00", "")

// ChartFileName returns "<column>_<kind>.png".
func ChartFileName(column string, kind ChartKind) string {
	return fileNameReplacer.Replace(column) + "_" + string(kind) + ".png"
}

// MatrixFileName returns "<matrix>.png".
func MatrixFileName(matrix string) string {
	return fileNameReplacer.Replace(matrix) + ".png"
}
