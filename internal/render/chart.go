// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ChartKind selects how a Chart draws its series.
type ChartKind int

const (
	// KindLine draws one sparkline row per series.
	KindLine ChartKind = iota
	// KindBar draws the first series as vertical columns.
	KindBar
)

// Series is one named set of values aligned with the chart labels.
type Series struct {
	Name   string
	Values []float64
	Color  lipgloss.Color
}

// Chart is a time-series widget. Its data store is replaced wholesale by
// SetData and redrawn synchronously by Refresh; there are no transitions.
type Chart struct {
	Title string
	Unit  string
	Kind  ChartKind
	// Max fixes the top of the scale. Zero scales to the largest value.
	Max float64

	width  int
	height int
	labels []string
	series []Series
	view   string
}

func NewChart(title, unit string, kind ChartKind) *Chart {
	c := &Chart{Title: title, Unit: unit, Kind: kind, width: 30, height: 5}
	c.Refresh()
	return c
}

// SetSize sets the plot area in cells.
func (c *Chart) SetSize(width, height int) {
	c.width = max(width, 8)
	c.height = max(height, 1)
}

// SetData replaces labels and every series.
func (c *Chart) SetData(labels []string, series ...Series) {
	c.labels = append([]string(nil), labels...)
	c.series = make([]Series, len(series))
	for i, s := range series {
		s.Values = append([]float64(nil), s.Values...)
		c.series[i] = s
	}
}

func (c *Chart) Labels() []string { return c.labels }

func (c *Chart) Series() []Series { return c.series }

// Refresh redraws from the current data store.
func (c *Chart) Refresh() {
	var rows []string
	rows = append(rows, StyleTitle.Render(c.Title))

	if len(c.labels) == 0 {
		rows = append(rows, StyleSubtitle.Render("waiting for data"))
		c.view = strings.Join(rows, "\n")
		return
	}

	switch c.Kind {
	case KindBar:
		rows = append(rows, c.bars()...)
	default:
		rows = append(rows, c.lines()...)
	}
	rows = append(rows, c.axis())
	c.view = strings.Join(rows, "\n")
}

// View returns the last refreshed rendering.
func (c *Chart) View() string { return c.view }

func (c *Chart) scale() float64 {
	if c.Max > 0 {
		return c.Max
	}
	top := 0.0
	for _, s := range c.series {
		for _, v := range s.Values {
			top = max(top, v)
		}
	}
	if top == 0 {
		top = 1
	}
	return top
}

var sparkChars = []rune{' ', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

func (c *Chart) lines() []string {
	top := c.scale()
	nameWidth := 0
	for _, s := range c.series {
		nameWidth = max(nameWidth, len(s.Name))
	}

	var out []string
	for _, s := range c.series {
		var sb strings.Builder
		for _, v := range tail(s.Values, c.columns()) {
			idx := int(v / top * float64(len(sparkChars)-1))
			idx = min(max(idx, 0), len(sparkChars)-1)
			sb.WriteRune(sparkChars[idx])
		}
		latest := "-"
		if n := len(s.Values); n > 0 {
			latest = fmt.Sprintf("%.1f%s", s.Values[n-1], c.Unit)
		}
		style := lipgloss.NewStyle().Foreground(s.Color)
		out = append(out, fmt.Sprintf("%-*s %s %s",
			nameWidth, s.Name, style.Render(sb.String()), latest))
	}
	return out
}

var barEighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

func (c *Chart) bars() []string {
	if len(c.series) == 0 {
		return nil
	}
	s := c.series[0]
	top := c.scale()
	values := tail(s.Values, c.columns())
	style := lipgloss.NewStyle().Foreground(s.Color)

	rows := make([]string, c.height)
	for r := 0; r < c.height; r++ {
		floor := (c.height - 1 - r) * 8
		var sb strings.Builder
		for _, v := range values {
			level := int(v / top * float64(c.height*8))
			fill := min(max(level-floor, 0), 8)
			sb.WriteRune(barEighths[fill])
			sb.WriteRune(' ')
		}
		rows[r] = style.Render(sb.String())
	}

	latest := "-"
	if n := len(s.Values); n > 0 {
		latest = fmt.Sprintf("%.2f %s", s.Values[n-1], c.Unit)
	}
	return append(rows, fmt.Sprintf("%s: %s", s.Name, latest))
}

// columns is how many samples fit the plot width.
func (c *Chart) columns() int {
	if c.Kind == KindBar {
		return c.width / 2
	}
	return c.width
}

func (c *Chart) axis() string {
	labels := c.labels
	if n := c.columns(); len(labels) > n {
		labels = labels[len(labels)-n:]
	}
	first, last := labels[0], labels[len(labels)-1]
	if len(labels) == 1 {
		return StyleSubtitle.Render(first)
	}
	gap := max(c.width-len(first)-len(last), 1)
	return StyleSubtitle.Render(first + strings.Repeat(" ", gap) + last)
}

func tail(v []float64, n int) []float64 {
	if n > 0 && len(v) > n {
		return v[len(v)-n:]
	}
	return v
}
