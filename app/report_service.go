package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"statreport/domain/analysis"
	"statreport/domain/core"
	"statreport/domain/dataset"
	"statreport/domain/report"
	"statreport/internal"
	"statreport/internal/missing"
	ireport "statreport/internal/report"
	"statreport/internal/statistics"
	"statreport/ports"

	"golang.org/x/sync/errgroup"
)

// ReportService runs the pipeline: missing-value policy, statistics,
// charts and the assembled document. Every method is a pure function of
// the dataset and the request.
type ReportService struct {
	engine  *statistics.Engine
	charts  ports.ChartRenderer
	layout  ireport.Options
	workers int
	logger  *internal.Logger
}

// ServiceOptions configures a ReportService.
type ServiceOptions struct {
	Report        ireport.Options
	RenderWorkers int
}

// ChartFile is one rendered chart, named for standalone download.
type ChartFile struct {
	Name        string           `json:"name"`
	Title       string           `json:"title"`
	Kind        report.ChartKind `json:"kind"`
	Column      string           `json:"column,omitempty"`
	PNG         []byte           `json:"-"`
	Placeholder bool             `json:"placeholder"`
}

// Artifact is everything produced for one export request.
type Artifact struct {
	Result    *analysis.Result
	Charts    []ChartFile
	Assembler *ireport.Assembler
}

// NewReportService creates a report service
func NewReportService(engine *statistics.Engine, charts ports.ChartRenderer, opts ServiceOptions, logger *internal.Logger) *ReportService {
	if opts.RenderWorkers <= 0 {
		opts.RenderWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ReportService{
		engine:  engine,
		charts:  charts,
		layout:  opts.Report,
		workers: opts.RenderWorkers,
		logger:  logger.Named("ReportService"),
	}
}

// Prepare normalizes the request, checks the selection against ds and
// applies the missing-value policy.
func (s *ReportService) Prepare(ds *dataset.Dataset, req analysis.Request) (*dataset.Dataset, analysis.Request, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, req, err
	}
	if err := req.Validate(ds); err != nil {
		return nil, req, err
	}
	prepared, err := missing.Apply(ds, req.MissingPolicy)
	if err != nil {
		return nil, req, err
	}
	return prepared, req, nil
}

// Analyze computes the statistics for a request.
func (s *ReportService) Analyze(ctx context.Context, ds *dataset.Dataset, req analysis.Request) (*analysis.Result, error) {
	prepared, req, err := s.Prepare(ds, req)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.analyze(prepared, req)
}

func (s *ReportService) analyze(ds *dataset.Dataset, req analysis.Request) (*analysis.Result, error) {
	result := &analysis.Result{
		Rows:      ds.Rows(),
		Policy:    req.MissingPolicy,
		Summaries: s.engine.Summarize(ds, req.SelectedNumeric),
	}
	if req.ShowCorrelation {
		m := s.engine.Correlate(ds)
		result.Correlation = &m
	}
	for _, name := range req.SelectedCategorical {
		f, err := s.engine.Frequency(ds, name)
		if err != nil {
			return nil, err
		}
		result.Frequencies = append(result.Frequencies, f)
	}
	return result, nil
}

// chartJob renders one chart into its slot.
type chartJob struct {
	file   ChartFile
	render func() ([]byte, error)
}

// BuildArtifact computes statistics, renders every chart and assembles
// the sections in report order.
func (s *ReportService) BuildArtifact(ctx context.Context, ds *dataset.Dataset, req analysis.Request) (*Artifact, error) {
	start := time.Now()
	prepared, req, err := s.Prepare(ds, req)
	if err != nil {
		return nil, err
	}
	result, err := s.analyze(prepared, req)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	jobs := s.chartJobs(prepared, req, result)
	files, err := s.renderAll(ctx, jobs)
	if err != nil {
		return nil, err
	}

	asm := ireport.NewAssembler(s.layout, s.logger)
	next := 0
	addChart := func() {
		f := files[next]
		next++
		asm.AddImage(f.Title, f.Name, f.PNG)
	}

	if len(result.Summaries) > 0 {
		asm.AddTable(TitleNumericStats, SummaryTable(result.Summaries))
	}
	for range result.Summaries {
		addChart() // histogram
		addChart() // boxplot
	}
	if hasCorrelation(result) {
		asm.AddTable(TitleCorrelation, CorrelationTable(*result.Correlation))
		addChart()
	}
	for _, f := range result.Frequencies {
		asm.AddTable(FrequencyTitle(f.Column), FrequencyTable(f))
		addChart()
	}

	log.Printf("[ReportService] Built artifact for %s: %d sections, %d charts in %v",
		ds.Name(), asm.Len(), len(files), time.Since(start).Round(time.Millisecond))
	return &Artifact{Result: result, Charts: files, Assembler: asm}, nil
}

func hasCorrelation(r *analysis.Result) bool {
	return r.Correlation != nil && !r.Correlation.IsEmpty()
}

// chartJobs lists the charts in the order their sections appear.
func (s *ReportService) chartJobs(ds *dataset.Dataset, req analysis.Request, result *analysis.Result) []chartJob {
	var jobs []chartJob
	for _, sum := range result.Summaries {
		col, _ := ds.Column(sum.Name)
		values := col.Present()
		jobs = append(jobs,
			s.columnJob(req.Theme, sum.Name, report.ChartHistogram, func(theme, title string) ([]byte, error) {
				return s.charts.Histogram(theme, title, values)
			}),
			s.columnJob(req.Theme, sum.Name, report.ChartBoxPlot, func(theme, title string) ([]byte, error) {
				return s.charts.BoxPlot(theme, title, values)
			}),
		)
	}
	if hasCorrelation(result) {
		m := *result.Correlation
		jobs = append(jobs, chartJob{
			file: ChartFile{Name: report.MatrixFileName(report.CorrelationMatrixName), Title: TitleCorrelation, Kind: report.ChartHeatmap},
			render: func() ([]byte, error) {
				return s.charts.Heatmap(req.Theme, TitleCorrelation, m)
			},
		})
	} else if req.ShowCorrelation {
		s.logger.Info("correlation requested but %s has no numeric columns", ds.Name())
	}
	for _, f := range result.Frequencies {
		table := f
		jobs = append(jobs, s.columnJob(req.Theme, f.Column, report.ChartBar, func(theme, title string) ([]byte, error) {
			return s.charts.Bar(theme, title, table)
		}))
	}
	return jobs
}

func (s *ReportService) columnJob(theme, column string, kind report.ChartKind, draw func(theme, title string) ([]byte, error)) chartJob {
	title := ChartTitle(column, kind)
	return chartJob{
		file:   ChartFile{Name: report.ChartFileName(column, kind), Title: title, Kind: kind, Column: column},
		render: func() ([]byte, error) { return draw(theme, title) },
	}
}

// renderAll fans the jobs out over the worker limit. Slots keep the
// output in job order. Render failures leave a placeholder and are only
// logged.
func (s *ReportService) renderAll(ctx context.Context, jobs []chartJob) ([]ChartFile, error) {
	files := make([]ChartFile, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			png, err := job.render()
			f := job.file
			f.PNG = png
			if err != nil {
				s.logger.Warn("chart %s: %v", f.Name, err)
				f.Placeholder = true
			}
			if len(f.PNG) == 0 {
				return fmt.Errorf("%w: %s produced no image", core.ErrRenderFailed, f.Name)
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// ExportPDF builds the artifact and renders the document.
func (s *ReportService) ExportPDF(ctx context.Context, ds *dataset.Dataset, req analysis.Request) ([]byte, *Artifact, error) {
	art, err := s.BuildArtifact(ctx, ds, req)
	if err != nil {
		return nil, nil, err
	}
	doc, err := art.Assembler.Build()
	if err != nil {
		return nil, nil, err
	}
	return doc, art, nil
}

// PreviewHTML renders the artifact as HTML with inline images.
func (s *ReportService) PreviewHTML(ctx context.Context, ds *dataset.Dataset, req analysis.Request) ([]byte, error) {
	art, err := s.BuildArtifact(ctx, ds, req)
	if err != nil {
		return nil, err
	}
	return art.Assembler.HTML(ireport.MarkdownOptions{InlineImages: true}), nil
}

// Chart renders one standalone chart of a column.
func (s *ReportService) Chart(ctx context.Context, ds *dataset.Dataset, req analysis.Request, column string, kind report.ChartKind) (ChartFile, error) {
	prepared, req, err := s.Prepare(ds, req)
	if err != nil {
		return ChartFile{}, err
	}
	if err := ctx.Err(); err != nil {
		return ChartFile{}, err
	}

	if kind == report.ChartHeatmap {
		m := s.engine.Correlate(prepared)
		return s.single(chartJob{
			file:   ChartFile{Name: report.MatrixFileName(report.CorrelationMatrixName), Title: TitleCorrelation, Kind: kind},
			render: func() ([]byte, error) { return s.charts.Heatmap(req.Theme, TitleCorrelation, m) },
		}), nil
	}

	col, ok := prepared.Column(column)
	if !ok {
		return ChartFile{}, core.NewColumnError(column)
	}
	switch kind {
	case report.ChartHistogram, report.ChartBoxPlot:
		if !col.IsNumeric() {
			return ChartFile{}, fmt.Errorf("%w: %q is not numeric", core.ErrColumnKind, column)
		}
		values := col.Present()
		return s.single(s.columnJob(req.Theme, column, kind, func(theme, title string) ([]byte, error) {
			if kind == report.ChartHistogram {
				return s.charts.Histogram(theme, title, values)
			}
			return s.charts.BoxPlot(theme, title, values)
		})), nil
	case report.ChartBar:
		f, err := s.engine.Frequency(prepared, column)
		if err != nil {
			return ChartFile{}, err
		}
		return s.single(s.columnJob(req.Theme, column, kind, func(theme, title string) ([]byte, error) {
			return s.charts.Bar(theme, title, f)
		})), nil
	}
	return ChartFile{}, fmt.Errorf("%w: unknown chart kind %q", core.ErrInvalidRequest, kind)
}

func (s *ReportService) single(job chartJob) ChartFile {
	png, err := job.render()
	f := job.file
	f.PNG = png
	if err != nil {
		s.logger.Warn("chart %s: %v", f.Name, err)
		f.Placeholder = true
	}
	return f
}

// WriteFiles writes the document and every chart into dir and returns the
// written paths in report order.
func (a *Artifact) WriteFiles(dir string, doc []byte) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	paths := make([]string, 0, len(a.Charts)+1)
	write := func(name string, data []byte) error {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", p, err)
		}
		paths = append(paths, p)
		return nil
	}
	if doc != nil {
		if err := write(report.DocumentFileName, doc); err != nil {
			return nil, err
		}
	}
	for _, c := range a.Charts {
		if err := write(c.Name, c.PNG); err != nil {
			return nil, err
		}
	}
	return paths, nil
}
