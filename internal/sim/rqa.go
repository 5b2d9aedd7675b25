// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package sim

import (
	"math"

	"grimm.is/cybershield/internal/window"
)

const (
	DefaultRQAWindow  = 50
	DefaultRQAEpsilon = 50
)

// RQA is a recurrence quantification over a sliding window of scalar
// samples (packet sizes).
type RQA struct {
	Epsilon float64
	win     *window.Window[float64]
}

func NewRQA(size int, epsilon float64) *RQA {
	return &RQA{Epsilon: epsilon, win: window.New[float64](size)}
}

func (r *RQA) Add(v float64) {
	r.win.Append(v)
}

// Measure returns the recurrence rate and determinism as percentages
// rounded to one decimal. Two samples recur when they differ by less than
// Epsilon. The main diagonal is excluded and diagonal lines count from
// length two.
func (r *RQA) Measure() (rr, det float64) {
	data := r.win.Items()
	n := len(data)
	if n < 2 {
		return 0, 0
	}

	recurs := func(i, j int) bool { return math.Abs(data[i]-data[j]) < r.Epsilon }

	var recurrent int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if recurs(i, j) {
				recurrent++
			}
		}
	}
	// Symmetric matrix; count both triangles.
	recurrent *= 2

	var lines int
	for k := 1; k < n; k++ {
		run := 0
		for i := 0; i+k < n; i++ {
			if recurs(i, i+k) {
				run++
				continue
			}
			if run >= 2 {
				lines += run
			}
			run = 0
		}
		if run >= 2 {
			lines += run
		}
	}
	lines *= 2

	total := n*n - n
	rr = float64(recurrent) / float64(total)
	if recurrent > 0 {
		det = float64(lines) / float64(recurrent)
	}
	return round1(rr * 100), round1(det * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
