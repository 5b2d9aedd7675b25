// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package model

const (
	CategoryNormal = "Normal"
	CategoryDoS    = "DoS"
	CategoryProbe  = "Probe"
	CategoryR2L    = "R2L"
	CategoryU2R    = "U2R"
)

// ThreatCategories is the closed, ordered set rendered by the distribution
// widget.
var ThreatCategories = []string{
	CategoryNormal,
	CategoryDoS,
	CategoryProbe,
	CategoryR2L,
	CategoryU2R,
}

// ThreatDistribution maps category name to count. Keys outside
// ThreatCategories are carried but never rendered.
type ThreatDistribution map[string]int

// Count returns the count for category, 0 when absent.
func (d ThreatDistribution) Count(category string) int {
	return d[category]
}

// Vector returns counts in ThreatCategories order.
func (d ThreatDistribution) Vector() []int {
	out := make([]int, len(ThreatCategories))
	for i, c := range ThreatCategories {
		out[i] = d.Count(c)
	}
	return out
}

// Total sums the rendered categories.
func (d ThreatDistribution) Total() int {
	var n int
	for _, v := range d.Vector() {
		n += v
	}
	return n
}
