package analysis

import (
	"statreport/domain/dataset"
	"statreport/domain/stats"
)

// Result holds the statistics computed for one request.
type Result struct {
	Rows        int
	Policy      dataset.MissingPolicy
	Summaries   []stats.ColumnStats
	Correlation *stats.CorrelationMatrix
	Frequencies []stats.FrequencyTable
}
