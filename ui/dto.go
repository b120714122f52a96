package ui

import (
	"math"
	"time"

	"statreport/domain/analysis"
	"statreport/domain/dataset"
	"statreport/domain/stats"
)

// UploadResponse describes a stored upload.
type UploadResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Hash        string                 `json:"hash"`
	Rows        int                    `json:"rows"`
	Numeric     []string               `json:"numeric"`
	Categorical []string               `json:"categorical"`
	Missing     []dataset.MissingCount `json:"missing"`
	CreatedAt   time.Time              `json:"created_at"`
}

func newUploadResponse(u Upload) UploadResponse {
	ds := u.Dataset
	return UploadResponse{
		ID:          u.ID.String(),
		Name:        u.Name,
		Hash:        u.Hash.String(),
		Rows:        ds.Rows(),
		Numeric:     nonNil(ds.NumericNames()),
		Categorical: nonNil(ds.CategoricalNames()),
		Missing:     ds.MissingCounts(),
		CreatedAt:   u.CreatedAt,
	}
}

// PreviewResponse is the head of a dataset as text.
type PreviewResponse struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// SummaryDTO is a ColumnStats row; undefined statistics encode as null.
type SummaryDTO struct {
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	Q25    *float64 `json:"q25"`
	Median *float64 `json:"median"`
	Q75    *float64 `json:"q75"`
	Max    *float64 `json:"max"`
	Mode   *float64 `json:"mode"`
}

// CorrelationDTO is a row-major correlation matrix.
type CorrelationDTO struct {
	Columns []string     `json:"columns"`
	Values  [][]*float64 `json:"values"`
}

// AnalysisResponse carries every statistic computed for a request.
type AnalysisResponse struct {
	Rows        int                    `json:"rows"`
	Policy      string                 `json:"policy"`
	Summaries   []SummaryDTO           `json:"summaries"`
	Correlation *CorrelationDTO        `json:"correlation,omitempty"`
	Frequencies []stats.FrequencyTable `json:"frequencies"`
}

func newAnalysisResponse(r *analysis.Result) AnalysisResponse {
	out := AnalysisResponse{
		Rows:        r.Rows,
		Policy:      r.Policy.String(),
		Summaries:   make([]SummaryDTO, len(r.Summaries)),
		Frequencies: r.Frequencies,
	}
	if out.Frequencies == nil {
		out.Frequencies = []stats.FrequencyTable{}
	}
	for i, s := range r.Summaries {
		out.Summaries[i] = SummaryDTO{
			Column: s.Name,
			Count:  s.Count,
			Mean:   finite(s.Mean),
			Std:    finite(s.Std),
			Min:    finite(s.Min),
			Q25:    finite(s.Q25),
			Median: finite(s.Median),
			Q75:    finite(s.Q75),
			Max:    finite(s.Max),
			Mode:   s.Mode,
		}
	}
	if r.Correlation != nil {
		rows := r.Correlation.Rows()
		values := make([][]*float64, len(rows))
		for i, row := range rows {
			values[i] = make([]*float64, len(row))
			for j, v := range row {
				values[i][j] = finite(v)
			}
		}
		out.Correlation = &CorrelationDTO{Columns: r.Correlation.Columns, Values: values}
	}
	return out
}

// finite maps NaN and infinities to nil so they encode as JSON null.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
