package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/readme-activity/internal/domain"
)

const (
	svgWidth     = 400
	svgRowHeight = 24
	svgTopPad    = 44
	svgBottomPad = 12

	barX        = 140
	barMaxWidth = 190
	minBarWidth = 2.0

	fallbackColor = "#586069"
)

//go:embed templates/langbar.svg.tmpl
var langBarTemplate string

var langBarTmpl = template.Must(template.New("langbar").Parse(langBarTemplate))

type langBarEntry struct {
	Name     string
	Color    string
	LabelY   int
	BarY     int
	BarWidth float64
	PctX     int
	Percent  int
}

type langBarViewModel struct {
	Width   int
	Height  int
	Title   string
	Entries []langBarEntry
}

// LangBar renders the proportional language bar SVG. Bar geometry follows
// the unfloored share of each language; the percentage label floors at 1%
// so narrow slices stay visible, which can push the labels' sum above 100.
func LangBar(langs []domain.LanguageStat) ([]byte, error) {
	vm := langBarViewModel{
		Width: svgWidth,
		Title: "Most Used Languages",
	}

	rowCount := len(langs)
	if rowCount == 0 {
		rowCount = 1 // one row for the "no data" text
	}
	vm.Height = svgTopPad + rowCount*svgRowHeight + svgBottomPad

	var total float64
	if len(langs) > 0 {
		sizes := make([]float64, len(langs))
		for i, l := range langs {
			sizes[i] = float64(l.Size)
		}
		total, _ = stats.Sum(sizes)
	}

	y := svgTopPad + 16
	for _, l := range langs {
		var share float64
		if total > 0 {
			share = float64(l.Size) / total
		}
		width := share * barMaxWidth
		if width < minBarWidth {
			width = minBarWidth
		}
		pct := int(share * 100)
		if pct < 1 {
			pct = 1
		}
		color := l.Color
		if color == "" {
			color = fallbackColor
		}
		vm.Entries = append(vm.Entries, langBarEntry{
			Name:     l.Name,
			Color:    color,
			LabelY:   y,
			BarY:     y - 10,
			BarWidth: width,
			PctX:     barX + int(width) + 6,
			Percent:  pct,
		})
		y += svgRowHeight
	}

	var buf bytes.Buffer
	if err := langBarTmpl.Execute(&buf, vm); err != nil {
		return nil, fmt.Errorf("render language badge: %w", err)
	}
	return buf.Bytes(), nil
}
