// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package render

import (
	"errors"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNotEnoughData is returned when a chart has fewer than two samples.
var ErrNotEnoughData = errors.New("chart needs at least two samples")

var pngColors = []drawing.Color{
	drawing.ColorFromHex("2d9cdb"),
	drawing.ColorFromHex("eb5757"),
	drawing.ColorFromHex("9b51e0"),
}

// WritePNG draws c as a PNG image with one line per series and the sample
// labels on the x axis.
func WritePNG(w io.Writer, c *Chart) error {
	labels := c.Labels()
	if len(labels) < 2 {
		return ErrNotEnoughData
	}

	xs := make([]float64, len(labels))
	ticks := make([]chart.Tick, 0, len(labels))
	step := max(len(labels)/6, 1)
	for i, l := range labels {
		xs[i] = float64(i)
		if i%step == 0 || i == len(labels)-1 {
			ticks = append(ticks, chart.Tick{Value: xs[i], Label: l})
		}
	}

	top := c.scale()
	var series []chart.Series
	for i, s := range c.Series() {
		col := pngColors[i%len(pngColors)]
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: s.Values,
			Style: chart.Style{
				StrokeWidth: 2,
				StrokeColor: col,
				DotWidth:    3,
				DotColor:    col,
			},
		})
	}

	graph := chart.Chart{
		Title:      c.Title,
		Width:      800,
		Height:     360,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 24}},
		XAxis:      chart.XAxis{Range: &chart.ContinuousRange{Min: 0, Max: xs[len(xs)-1]}, Ticks: ticks},
		YAxis:      chart.YAxis{Name: c.Unit, Range: &chart.ContinuousRange{Min: 0, Max: top}},
		Series:     series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}
