// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package window

import "fmt"

// LogBuffer keeps the newest entries first. Insertion is at the head and the
// tail is truncated back to capacity.
type LogBuffer[T any] struct {
	entries  []T
	capacity int
}

func NewLogBuffer[T any](capacity int) *LogBuffer[T] {
	if capacity < 1 {
		panic(fmt.Sprintf("window: log capacity must be positive, got %d", capacity))
	}
	return &LogBuffer[T]{
		entries:  make([]T, 0, capacity),
		capacity: capacity,
	}
}

// Prepend inserts e as the newest entry and drops anything past capacity.
func (b *LogBuffer[T]) Prepend(e T) {
	if len(b.entries) < b.capacity {
		b.entries = append(b.entries, e)
	}
	copy(b.entries[1:], b.entries[:len(b.entries)-1])
	b.entries[0] = e
}

func (b *LogBuffer[T]) Len() int { return len(b.entries) }

func (b *LogBuffer[T]) Cap() int { return b.capacity }

// Entries returns a copy, newest first.
func (b *LogBuffer[T]) Entries() []T {
	out := make([]T, len(b.entries))
	copy(out, b.entries)
	return out
}
