// Package report assembles statistic tables and chart images, in the order
// they were added, into one paginated PDF document.
package report

import (
	"time"

	"statreport/domain/report"
	"statreport/internal"
)

// DefaultTitle heads every document unless Options.Title is set.
const DefaultTitle = "Tanımlayıcı İstatistikler Raporu"

// Options are the layout limits of a document.
type Options struct {
	Title string
	// MaxColumns caps table width, the label column included. Extra columns
	// are dropped without a marker; 10 is kept for compatibility with
	// reports produced before the limit became configurable.
	MaxColumns  int
	ImageWidth  float64 // points
	ImageHeight float64 // points
	FontSize    float64
	// Timestamp is written as the creation and modification date so that
	// identical inputs give identical bytes.
	Timestamp time.Time
}

// DefaultOptions returns the standard report layout.
func DefaultOptions() Options {
	return Options{
		Title:       DefaultTitle,
		MaxColumns:  10,
		ImageWidth:  400,
		ImageHeight: 250,
		FontSize:    8,
		Timestamp:   time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Title == "" {
		o.Title = def.Title
	}
	if o.MaxColumns <= 0 {
		o.MaxColumns = def.MaxColumns
	}
	if o.ImageWidth <= 0 || o.ImageHeight <= 0 {
		o.ImageWidth, o.ImageHeight = def.ImageWidth, def.ImageHeight
	}
	if o.FontSize <= 0 {
		o.FontSize = def.FontSize
	}
	if o.Timestamp.IsZero() {
		o.Timestamp = def.Timestamp
	}
	return o
}

// Assembler accumulates sections for one document. It is not safe for
// concurrent use.
type Assembler struct {
	opts     Options
	sections []report.Section
	logger   *internal.Logger
}

// NewAssembler creates an empty assembler.
func NewAssembler(opts Options, logger *internal.Logger) *Assembler {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Assembler{opts: opts.withDefaults(), logger: logger.Named("Report")}
}

// Options returns the effective layout options.
func (a *Assembler) Options() Options { return a.opts }

// AddTable appends a table section, keeping only the first MaxColumns
// columns of the header and of every row.
func (a *Assembler) AddTable(title string, t report.Table) {
	if w := t.Width(); w > a.opts.MaxColumns {
		a.logger.Debug("table %q has %d columns, keeping %d", title, w, a.opts.MaxColumns)
	}
	t = t.Truncate(a.opts.MaxColumns)
	a.sections = append(a.sections, report.Section{Kind: report.SectionTable, Title: title, Table: &t})
}

// AddImage appends an image section drawn into the fixed image box. The
// aspect ratio of the source is not preserved.
func (a *Assembler) AddImage(title, name string, png []byte) {
	img := &report.Image{
		Name:   name,
		PNG:    png,
		Width:  a.opts.ImageWidth,
		Height: a.opts.ImageHeight,
	}
	a.sections = append(a.sections, report.Section{Kind: report.SectionImage, Title: title, Image: img})
}

// Sections returns the sections in insertion order.
func (a *Assembler) Sections() []report.Section {
	out := make([]report.Section, len(a.sections))
	copy(out, a.sections)
	return out
}

// Len returns the number of sections added so far.
func (a *Assembler) Len() int { return len(a.sections) }

// Build renders the document. Any failing section fails the whole build
// with core.ErrAssemblyFailed and no bytes are returned.
func (a *Assembler) Build() ([]byte, error) {
	out, err := renderPDF(a.opts, a.sections)
	if err != nil {
		a.logger.Error("build failed: %v", err)
		return nil, err
	}
	a.logger.Info("built %d sections into %d bytes", len(a.sections), len(out))
	return out, nil
}
