// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package sim

import (
	"grimm.is/cybershield/internal/aggregate"
	"grimm.is/cybershield/internal/model"
	"grimm.is/cybershield/internal/window"
)

const (
	sessionHistory = 50
	sessionReport  = 10
)

type sampleHistory struct {
	cpu, memory, network *window.Window[float64]
}

func newSampleHistory() sampleHistory {
	return sampleHistory{
		cpu:     window.New[float64](sessionHistory),
		memory:  window.New[float64](sessionHistory),
		network: window.New[float64](sessionHistory),
	}
}

func (h sampleHistory) add(cur model.CurrentMetrics) {
	h.cpu.Append(cur.CPU)
	h.memory.Append(cur.Memory)
	h.network.Append(cur.NetworkSent)
}

func tail(w *window.Window[float64], n int) []float64 {
	items := w.Items()
	if len(items) > n {
		items = items[len(items)-n:]
	}
	return items
}

func (h sampleHistory) recent() model.SampleSet {
	return model.SampleSet{
		CPU:     tail(h.cpu, sessionReport),
		Memory:  tail(h.memory, sessionReport),
		Network: tail(h.network, sessionReport),
	}
}

// Session is the resettable part of the backend: the attack flag and the
// load samples taken before and after it latched.
type Session struct {
	AttackDetected bool
	before, after  sampleHistory
}

func NewSession() *Session {
	return &Session{before: newSampleHistory(), after: newSampleHistory()}
}

// Observe files cur under the side of the attack the session is on and
// returns the response body.
func (s *Session) Observe(cur model.CurrentMetrics) model.SystemMetrics {
	if s.AttackDetected {
		s.after.add(cur)
	} else {
		s.before.add(cur)
	}
	return model.SystemMetrics{
		Current:        cur,
		BeforeAttack:   s.before.recent(),
		AfterAttack:    s.after.recent(),
		AttackDetected: s.AttackDetected,
	}
}

// PerformanceImpact averages the whole before/after histories. Empty sides
// report 0.
type PerformanceImpact struct {
	AvgCPUBefore    float64 `json:"avg_cpu_before"`
	AvgCPUAfter     float64 `json:"avg_cpu_after"`
	AvgMemoryBefore float64 `json:"avg_memory_before"`
	AvgMemoryAfter  float64 `json:"avg_memory_after"`
}

func (s *Session) Impact() PerformanceImpact {
	mean := func(w *window.Window[float64]) float64 {
		m, _ := aggregate.Mean(w.Items())
		return m
	}
	return PerformanceImpact{
		AvgCPUBefore:    mean(s.before.cpu),
		AvgCPUAfter:     mean(s.after.cpu),
		AvgMemoryBefore: mean(s.before.memory),
		AvgMemoryAfter:  mean(s.after.memory),
	}
}
