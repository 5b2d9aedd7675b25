// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package window provides the bounded buffers the dashboard folds streaming
// snapshots into.
package window

import "fmt"

// Point is one labelled sample of a time series.
type Point[V any] struct {
	Label string
	Value V
}

// Window is a fixed-capacity FIFO ring. Once full, every Append evicts the
// oldest entry before storing the new one, so Len never exceeds Cap.
type Window[T any] struct {
	buf  []T
	head int // next write position
	size int
}

// New creates an empty window. Capacity must be positive.
func New[T any](capacity int) *Window[T] {
	if capacity < 1 {
		panic(fmt.Sprintf("window: capacity must be positive, got %d", capacity))
	}
	return &Window[T]{buf: make([]T, capacity)}
}

// Append stores v, evicting the oldest entry if the window is full.
func (w *Window[T]) Append(v T) {
	w.buf[w.head] = v
	w.head = (w.head + 1) % len(w.buf)
	if w.size < len(w.buf) {
		w.size++
	}
}

func (w *Window[T]) Len() int { return w.size }

func (w *Window[T]) Cap() int { return len(w.buf) }

// Items returns a copy of the contents, oldest first.
func (w *Window[T]) Items() []T {
	out := make([]T, w.size)
	start := (w.head - w.size + len(w.buf)) % len(w.buf)
	for i := 0; i < w.size; i++ {
		out[i] = w.buf[(start+i)%len(w.buf)]
	}
	return out
}

// Last returns the newest entry.
func (w *Window[T]) Last() (T, bool) {
	var zero T
	if w.size == 0 {
		return zero, false
	}
	return w.buf[(w.head-1+len(w.buf))%len(w.buf)], true
}

// Series is a Window of labelled points.
type Series[V any] struct {
	*Window[Point[V]]
}

// NewSeries creates an empty labelled series with the given capacity.
func NewSeries[V any](capacity int) Series[V] {
	return Series[V]{Window: New[Point[V]](capacity)}
}

// Labels returns the x-axis labels, oldest first.
func (s Series[V]) Labels() []string {
	items := s.Items()
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.Label
	}
	return out
}

// Values returns the point values, oldest first.
func (s Series[V]) Values() []V {
	items := s.Items()
	out := make([]V, len(items))
	for i, p := range items {
		out[i] = p.Value
	}
	return out
}
