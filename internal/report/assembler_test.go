package report

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"statreport/domain/core"
	"statreport/domain/report"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 5))
	for x := 0; x < 8; x++ {
		img.Set(x, 2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func wideTable(cols, rows int) report.Table {
	t := report.Table{}
	for c := 0; c < cols; c++ {
		t.Header = append(t.Header, fmt.Sprintf("col%d", c))
	}
	for r := 0; r < rows; r++ {
		row := make([]string, cols)
		for c := range row {
			row[c] = fmt.Sprintf("%d.%d", r, c)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func TestAddTableTruncatesToTenColumns(t *testing.T) {
	a := NewAssembler(DefaultOptions(), nil)
	a.AddTable("wide", wideTable(15, 3))

	sections := a.Sections()
	require.Len(t, sections, 1)
	tbl := sections[0].Table
	assert.Equal(t, 10, tbl.Width())
	assert.Len(t, tbl.Header, 10)
	for _, row := range tbl.Rows {
		assert.Len(t, row, 10)
	}
	assert.Equal(t, "col9", tbl.Header[9])

	_, err := a.Build()
	require.NoError(t, err)
}

func TestAddTableCustomLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxColumns = 4
	a := NewAssembler(opts, nil)
	a.AddTable("narrow", wideTable(6, 1))
	assert.Equal(t, 4, a.Sections()[0].Table.Width())
}

func TestAddImageUsesFixedBox(t *testing.T) {
	a := NewAssembler(DefaultOptions(), nil)
	a.AddImage("age - Histogram", "age_histogram.png", tinyPNG(t))

	img := a.Sections()[0].Image
	require.NotNil(t, img)
	assert.Equal(t, 400.0, img.Width)
	assert.Equal(t, 250.0, img.Height)
	assert.Equal(t, report.SectionImage, a.Sections()[0].Kind)
}

func TestBuildIsDeterministic(t *testing.T) {
	build := func() []byte {
		a := NewAssembler(DefaultOptions(), nil)
		a.AddTable("Sayısal İstatistikler", wideTable(10, 4))
		a.AddImage("age - Histogram", "age_histogram.png", tinyPNG(t))
		a.AddTable("city - Frekans", wideTable(3, 2))
		out, err := a.Build()
		require.NoError(t, err)
		return out
	}
	first, second := build(), build()
	assert.True(t, bytes.HasPrefix(first, []byte("%PDF-")))
	assert.Equal(t, first, second)
}

func TestBuildEmptyDocument(t *testing.T) {
	a := NewAssembler(Options{}, nil)
	out, err := a.Build()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Zero(t, a.Len())
	assert.Equal(t, DefaultTitle, a.Options().Title)
}

func TestBuildLongTableBreaksPages(t *testing.T) {
	a := NewAssembler(DefaultOptions(), nil)
	a.AddTable("long", wideTable(3, 300))
	a.AddImage("after", "after.png", tinyPNG(t))
	out, err := a.Build()
	require.NoError(t, err)
	assert.Greater(t, bytes.Count(out, []byte("/Type /Page\n")), 1)
}

func TestBuildFailsOnCorruptImage(t *testing.T) {
	a := NewAssembler(DefaultOptions(), nil)
	a.AddTable("ok", wideTable(2, 1))
	a.AddImage("broken", "broken.png", []byte("not a png"))

	out, err := a.Build()
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, core.ErrAssemblyFailed))
	assert.Contains(t, err.Error(), "broken")
}

func TestMarkdownAndHTML(t *testing.T) {
	a := NewAssembler(DefaultOptions(), nil)
	a.AddTable("city - Frekans", report.Table{
		Header: []string{"city", "Frekans", "Yüzde (%)"},
		Rows:   [][]string{{"A", "2", "50.00"}, {"B|C", "2", "50.00"}},
	})
	a.AddImage("city - Bar Grafiği", "city_bar.png", tinyPNG(t))

	md := a.Markdown(MarkdownOptions{})
	assert.True(t, strings.HasPrefix(md, "# "+DefaultTitle))
	assert.Contains(t, md, "## city - Frekans")
	assert.Contains(t, md, "| city | Frekans | Yüzde (%) |")
	assert.Contains(t, md, `| B\|C | 2 | 50.00 |`)
	assert.Contains(t, md, "![city - Bar Grafiği](city_bar.png)")
	assert.Less(t, strings.Index(md, "Frekans"), strings.Index(md, "Bar Grafiği"))

	html := string(a.HTML(MarkdownOptions{InlineImages: true}))
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, `src="data:image/png;base64,`)
}

func TestHTMLEscapesCellMarkup(t *testing.T) {
	a := NewAssembler(DefaultOptions(), nil)
	a.AddTable("<b>notes</b>", report.Table{
		Header: []string{"note", "Frekans"},
		Rows: [][]string{
			{`<img src=x onerror="alert(1)">`, "1"},
			{"<script>alert(2)</script>", "1"},
		},
	})

	md := a.Markdown(MarkdownOptions{})
	assert.NotContains(t, md, "<img")
	assert.Contains(t, md, "&lt;img src=x onerror=&#34;alert(1)&#34;&gt;")

	out := string(a.HTML(MarkdownOptions{}))
	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<b>notes</b>")
	assert.Contains(t, out, "lt;script")
}

func TestBuildClipsLongCellQuickly(t *testing.T) {
	a := NewAssembler(DefaultOptions(), nil)
	a.AddTable("long cell", report.Table{
		Header: []string{"note", "Frekans"},
		Rows:   [][]string{{strings.Repeat("x", 200000), "1"}},
	})

	start := time.Now()
	out, err := a.Build()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestClipFitsWidth(t *testing.T) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 8)
	w := &pdfWriter{pdf: pdf}

	assert.Equal(t, "short", w.clip("short", 100))

	clipped := w.clip(strings.Repeat("W", 1000), 60)
	assert.True(t, strings.HasSuffix(clipped, "..."))
	assert.LessOrEqual(t, pdf.GetStringWidth(clipped), 60.0+1e-9)
	assert.Greater(t, pdf.GetStringWidth(clipped+"W"), 60.0)

	assert.Equal(t, "", w.clip("WWWW", 1))
}

func TestFoldTurkish(t *testing.T) {
	assert.Equal(t, "Sayisal Istatistikler", foldTurkish.Replace("Sayısal İstatistikler"))
	assert.Equal(t, "Bar Grafigi", foldTurkish.Replace("Bar Grafiği"))
}
