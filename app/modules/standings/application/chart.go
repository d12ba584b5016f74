package standingsservice

import (
	"bytes"

	standingsdomain "github.com/Black-And-White-Club/dugout/app/modules/standings/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colours used for rendered charts.
type ChartPalette struct {
	Background drawing.Color
	TextColor  drawing.Color
	Positive   drawing.Color
	Negative   drawing.Color
}

var DefaultPalette = ChartPalette{
	Background: drawing.ColorWhite,
	TextColor:  drawing.ColorFromHex("1f2933"),
	Positive:   drawing.ColorFromHex("2f855a"),
	Negative:   drawing.ColorFromHex("c53030"),
}

// RenderRunDifferential draws one bar per team in table order.
func RenderRunDifferential(rows []standingsdomain.Row, palette ChartPalette) ([]byte, error) {
	if !anyRuns(rows) {
		return renderNoData(palette)
	}

	bars := make([]chart.Value, len(rows))
	for i, r := range rows {
		fill := palette.Positive
		if r.Diff < 0 {
			fill = palette.Negative
		}
		label := r.Abbreviation
		if label == "" {
			label = r.Name
		}
		bars[i] = chart.Value{
			Label: label,
			Value: float64(r.Diff),
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		}
	}

	graph := chart.BarChart{
		Title:        "Run differential",
		TitleStyle:   chart.Style{FontColor: palette.TextColor},
		Width:        800,
		Height:       400,
		BarWidth:     40,
		UseBaseValue: true,
		BaseValue:    0,
		Background:   chart.Style{FillColor: palette.Background},
		Canvas:       chart.Style{FillColor: palette.Background},
		XAxis:        chart.Style{FontColor: palette.TextColor},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: palette.TextColor},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// anyRuns reports whether any bar would be non-zero. A flat chart has no
// value range to draw.
func anyRuns(rows []standingsdomain.Row) bool {
	for _, r := range rows {
		if r.Diff != 0 {
			return true
		}
	}
	return false
}

func renderNoData(palette ChartPalette) ([]byte, error) {
	const msg = "No games played yet"

	graph := chart.Chart{
		Width:      400,
		Height:     200,
		Background: chart.Style{FillColor: palette.Background},
		Canvas:     chart.Style{FillColor: palette.Background},
		XAxis:      chart.XAxis{Style: chart.Style{Hidden: true}},
		YAxis:      chart.YAxis{Style: chart.Style{Hidden: true}},
		// The renderer needs one series to size the canvas.
		Series: []chart.Series{chart.ContinuousSeries{
			Style:   chart.Style{Hidden: true},
			XValues: []float64{0, 1},
			YValues: []float64{0, 1},
		}},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, _ chart.Style) {
				r.SetFontColor(palette.TextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				r.Text(msg, (cb.Width()-tb.Width())/2, (cb.Height()+tb.Height())/2)
			},
		},
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
