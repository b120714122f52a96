package report

import (
	"encoding/base64"
	"fmt"
	stdhtml "html"
	"net/url"
	"strings"

	"statreport/domain/report"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// MarkdownOptions controls how image sections are referenced.
type MarkdownOptions struct {
	// InlineImages embeds PNGs as data URIs instead of linking to the
	// standalone chart file names.
	InlineImages bool
}

// Markdown renders the same sections as Build, in the same order, as a
// Markdown document with pipe tables.
func (a *Assembler) Markdown(opts MarkdownOptions) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(safeCell(a.opts.Title))
	b.WriteString("\n\n")

	for _, s := range a.sections {
		b.WriteString("## ")
		b.WriteString(safeCell(s.Title))
		b.WriteString("\n\n")
		switch s.Kind {
		case report.SectionTable:
			writeTable(&b, s.Table)
		case report.SectionImage:
			writeImage(&b, s.Title, s.Image, opts)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HTML converts Markdown to an HTML fragment. Cell text is escaped by
// Markdown and raw HTML is dropped, so uploaded values never become markup.
func (a *Assembler) HTML(opts MarkdownOptions) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	return markdown.ToHTML([]byte(a.Markdown(opts)), p, renderer)
}

func writeTable(b *strings.Builder, t *report.Table) {
	if t == nil || t.Width() == 0 {
		return
	}
	cols := t.Width()
	writeRow(b, t.Header, cols)
	b.WriteString("|")
	for i := 0; i < cols; i++ {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, row := range t.Rows {
		writeRow(b, row, cols)
	}
}

func writeRow(b *strings.Builder, cells []string, cols int) {
	b.WriteString("|")
	for i := 0; i < cols; i++ {
		v := ""
		if i < len(cells) {
			v = cells[i]
		}
		b.WriteString(" ")
		b.WriteString(safeCell(v))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func writeImage(b *strings.Builder, title string, img *report.Image, opts MarkdownOptions) {
	if img == nil {
		return
	}
	src := url.PathEscape(img.Name)
	if opts.InlineImages {
		src = "data:image/png;base64," + base64.StdEncoding.EncodeToString(img.PNG)
	}
	fmt.Fprintf(b, "![%s](%s)\n", safeCell(title), src)
}

// safeCell flattens s onto one line and escapes the characters that would
// end a pipe cell or open an HTML tag.
func safeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = stdhtml.EscapeString(s)
	return strings.ReplaceAll(s, "|", "\\|")
}
