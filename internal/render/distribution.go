// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"grimm.is/cybershield/internal/model"
)

// Distribution renders the threat category shares as static gauges.
type Distribution struct {
	Title  string
	counts []int
	bars   []progress.Model
	view   string
}

func NewDistribution(title string, width int) *Distribution {
	d := &Distribution{Title: title, counts: make([]int, len(model.ThreatCategories))}
	for i := range model.ThreatCategories {
		d.bars = append(d.bars, progress.New(
			progress.WithSolidFill(categoryColors[i%len(categoryColors)]),
			progress.WithoutPercentage(),
			progress.WithWidth(width),
		))
	}
	d.Refresh()
	return d
}

func (d *Distribution) SetWidth(width int) {
	for i := range d.bars {
		d.bars[i].Width = max(width, 4)
	}
}

// SetData replaces every category value. Missing categories read as 0.
func (d *Distribution) SetData(dist model.ThreatDistribution) {
	d.counts = dist.Vector()
}

func (d *Distribution) Counts() []int { return d.counts }

// Refresh redraws at the current values. ViewAs renders the target state
// directly, without the spring animation of progress.Model.Update.
func (d *Distribution) Refresh() {
	total := 0
	for _, n := range d.counts {
		total += n
	}

	rows := []string{StyleTitle.Render(d.Title)}
	for i, name := range model.ThreatCategories {
		pct := 0.0
		if total > 0 {
			pct = float64(d.counts[i]) / float64(total)
		}
		rows = append(rows, fmt.Sprintf("%-6s %s %5d", name, d.bars[i].ViewAs(pct), d.counts[i]))
	}
	d.view = strings.Join(rows, "\n")
}

func (d *Distribution) View() string { return d.view }
