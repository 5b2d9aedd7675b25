// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package aggregate reduces before/after sample collections to the scalar
// pair plotted for each tick.
package aggregate

// EmptyPolicy says what an empty sample collection reduces to.
type EmptyPolicy int

const (
	// UseCurrent substitutes the snapshot's instantaneous value.
	UseCurrent EmptyPolicy = iota
	// UseZero substitutes 0.
	UseZero
)

// An empty baseline reads as the current value, an empty post-attack
// collection reads as 0.
const (
	EmptyBefore = UseCurrent
	EmptyAfter  = UseZero
)

// Pair is one dual-series sample.
type Pair struct {
	Before float64
	After  float64
}

// Mean returns the arithmetic mean and false when samples is empty.
func Mean(samples []float64) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples)), true
}

// Reduce averages both collections, applying EmptyBefore and EmptyAfter.
func Reduce(before, after []float64, current float64) Pair {
	return Pair{
		Before: reduceWith(before, EmptyBefore, current),
		After:  reduceWith(after, EmptyAfter, current),
	}
}

func reduceWith(samples []float64, policy EmptyPolicy, current float64) float64 {
	if m, ok := Mean(samples); ok {
		return m
	}
	switch policy {
	case UseCurrent:
		return current
	default:
		return 0
	}
}

// BytesToMiB converts a byte counter to mebibytes.
func BytesToMiB(bytes float64) float64 {
	return bytes / 1024 / 1024
}
