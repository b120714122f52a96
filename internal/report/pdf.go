package report

import (
	"bytes"
	"fmt"
	"strings"

	"statreport/domain/core"
	"statreport/domain/report"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin   = 40.0
	heading1Size = 18.0
	heading2Size = 14.0
	sectionGap   = 12.0
	cellPadding  = 2.0
)

// The core PDF fonts are cp1252; Turkish letters outside it are folded.
var foldTurkish = strings.NewReplacer("ğ", "g", "Ğ", "G", "ş", "s", "Ş", "S", "ı", "i", "İ", "I")

type pdfWriter struct {
	pdf      *fpdf.Fpdf
	opts     Options
	tr       func(string) string
	contentW float64
	pageH    float64
}

func renderPDF(opts Options, sections []report.Section) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCreationDate(opts.Timestamp)
	pdf.SetModificationDate(opts.Timestamp)
	pdf.SetCatalogSort(true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)

	w := &pdfWriter{pdf: pdf, opts: opts, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pageW, pageH := pdf.GetPageSize()
	w.contentW = pageW - 2*pageMargin
	w.pageH = pageH

	pdf.SetTitle(opts.Title, true)
	pdf.AddPage()
	w.heading(opts.Title, heading1Size)

	for i, s := range sections {
		switch s.Kind {
		case report.SectionTable:
			w.table(s.Title, s.Table)
		case report.SectionImage:
			w.image(i, s.Title, s.Image)
		default:
			return nil, core.NewAssemblyError(s.Title, fmt.Errorf("unknown section kind %q", s.Kind))
		}
		if err := pdf.Error(); err != nil {
			return nil, core.NewAssemblyError(s.Title, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrAssemblyFailed, err)
	}
	return buf.Bytes(), nil
}

func (w *pdfWriter) text(s string) string {
	return w.tr(foldTurkish.Replace(s))
}

// ensure starts a new page unless h points still fit on this one.
func (w *pdfWriter) ensure(h float64) bool {
	if w.pdf.GetY()+h <= w.pageH-pageMargin {
		return false
	}
	w.pdf.AddPage()
	return true
}

func (w *pdfWriter) heading(title string, size float64) {
	h := size * 1.4
	w.ensure(h + sectionGap)
	w.pdf.SetFont("Helvetica", "B", size)
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.CellFormat(w.contentW, h, w.text(title), "", 1, "L", false, 0, "")
	w.pdf.Ln(sectionGap / 2)
}

func (w *pdfWriter) table(title string, t *report.Table) {
	rowH := w.opts.FontSize * 1.8
	w.ensure(heading2Size*1.4 + sectionGap + 2*rowH)
	w.heading(title, heading2Size)
	if t == nil {
		return
	}

	cols := t.Width()
	if cols == 0 {
		return
	}
	colW := w.contentW / float64(cols)

	w.pdf.SetFont("Helvetica", "", w.opts.FontSize)
	w.pdf.SetLineWidth(0.5)
	w.pdf.SetDrawColor(0, 0, 0)
	w.header(t.Header, cols, colW, rowH)
	for _, row := range t.Rows {
		if w.ensure(rowH) {
			w.header(t.Header, cols, colW, rowH)
		}
		w.row(row, cols, colW, rowH, false)
	}
	w.pdf.Ln(sectionGap)
}

func (w *pdfWriter) header(cells []string, cols int, colW, rowH float64) {
	w.pdf.SetFillColor(128, 128, 128)
	w.row(cells, cols, colW, rowH, true)
}

func (w *pdfWriter) row(cells []string, cols int, colW, rowH float64, fill bool) {
	for c := 0; c < cols; c++ {
		s := ""
		if c < len(cells) {
			s = w.clip(w.text(cells[c]), colW-2*cellPadding)
		}
		w.pdf.CellFormat(colW, rowH, s, "1", 0, "L", fill, 0, "")
	}
	w.pdf.Ln(rowH)
}

// clip cuts s at the last byte that still fits width points together with
// an ellipsis. Text is single-byte after translation and the core fonts
// have no kerning, so a string's width is the sum of its byte widths.
func (w *pdfWriter) clip(s string, width float64) string {
	if w.pdf.GetStringWidth(s) <= width {
		return s
	}
	const ellipsis = "..."
	budget := width - w.pdf.GetStringWidth(ellipsis)
	used, cut := 0.0, 0
	for cut < len(s) {
		cw := w.pdf.GetStringWidth(s[cut : cut+1])
		if used+cw > budget {
			break
		}
		used += cw
		cut++
	}
	if cut == 0 {
		return ""
	}
	return s[:cut] + ellipsis
}

func (w *pdfWriter) image(index int, title string, img *report.Image) {
	if img == nil {
		w.pdf.SetError(fmt.Errorf("image section without image"))
		return
	}
	w.ensure(heading2Size*1.4 + sectionGap + img.Height)
	w.heading(title, heading2Size)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	name := fmt.Sprintf("img%03d_%s", index, img.Name)
	w.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.PNG))
	if !w.pdf.Ok() {
		return
	}
	y := w.pdf.GetY()
	w.pdf.ImageOptions(name, pageMargin, y, img.Width, img.Height, false, opts, 0, "")
	w.pdf.SetY(y + img.Height + sectionGap)
}
