package app

import "statreport/domain/report"

// Section titles and table headers as they appear in the exported report.
const (
	TitleNumericStats = "Sayısal İstatistikler"
	TitleCorrelation  = "Korelasyon Matrisi"

	HeaderVariable  = "Değişken"
	HeaderFrequency = "Frekans"
	HeaderPercent   = "Yüzde (%)"
)

var summaryHeader = []string{HeaderVariable, "count", "mean", "std", "min", "25%", "50%", "75%", "max", "mod"}

// FrequencyTitle titles the frequency table of a categorical column.
func FrequencyTitle(column string) string { return column + " - Frekans" }

// ChartTitle titles a per-column chart.
func ChartTitle(column string, kind report.ChartKind) string {
	switch kind {
	case report.ChartHistogram:
		return column + " - Histogram"
	case report.ChartBoxPlot:
		return column + " - Boxplot"
	case report.ChartBar:
		return column + " - Bar Grafiği"
	}
	return TitleCorrelation
}
