package chart

import (
	"sort"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// DefaultTheme is used when a request names no theme or an unknown one.
const DefaultTheme = "whitegrid"

// Theme holds the colours a chart is drawn with.
type Theme struct {
	Name       string
	Background drawing.Color
	Plot       drawing.Color
	Grid       drawing.Color
	ShowGrid   bool
	Text       drawing.Color
	Axis       drawing.Color
	Accent     drawing.Color
	Line       drawing.Color
	Edge       drawing.Color
}

func rgb(r, g, b uint8) drawing.Color { return drawing.Color{R: r, G: g, B: b, A: 255} }

var (
	white     = rgb(255, 255, 255)
	paleBlue  = rgb(234, 234, 242)
	lightGrey = rgb(221, 221, 221)
	darkGrey  = rgb(51, 51, 51)
	deepBlue  = rgb(76, 114, 176)
	orange    = rgb(221, 132, 82)
)

var themes = map[string]Theme{
	"whitegrid": {Background: white, Plot: white, Grid: lightGrey, ShowGrid: true, Text: darkGrey, Axis: darkGrey, Accent: deepBlue, Line: orange, Edge: white},
	"darkgrid":  {Background: white, Plot: paleBlue, Grid: white, ShowGrid: true, Text: darkGrey, Axis: white, Accent: deepBlue, Line: orange, Edge: white},
	"dark":      {Background: white, Plot: paleBlue, Grid: white, Text: darkGrey, Axis: white, Accent: deepBlue, Line: orange, Edge: white},
	"white":     {Background: white, Plot: white, Grid: lightGrey, Text: darkGrey, Axis: darkGrey, Accent: deepBlue, Line: orange, Edge: white},
	"ticks":     {Background: white, Plot: white, Grid: lightGrey, Text: darkGrey, Axis: darkGrey, Accent: deepBlue, Line: orange, Edge: darkGrey},
	"seaborn":   {Background: white, Plot: paleBlue, Grid: white, ShowGrid: true, Text: darkGrey, Axis: white, Accent: rgb(85, 168, 104), Line: rgb(196, 78, 82), Edge: white},
}

var themeAliases = map[string]string{
	"light": "white",
}

// LookupTheme resolves a theme name, case-insensitively.
func LookupTheme(name string) (Theme, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := themeAliases[key]; ok {
		key = alias
	}
	t, ok := themes[key]
	if !ok {
		return Theme{}, false
	}
	t.Name = key
	return t, true
}

// ThemeNames lists the accepted theme names, aliases included.
func ThemeNames() []string {
	names := make([]string, 0, len(themes)+len(themeAliases))
	for n := range themes {
		names = append(names, n)
	}
	for n := range themeAliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
