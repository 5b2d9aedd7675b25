// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package dashboard owns the in-memory view state and the rules for folding
// each snapshot into it.
package dashboard

import (
	"fmt"
	"time"

	"grimm.is/cybershield/internal/aggregate"
	"grimm.is/cybershield/internal/model"
	"grimm.is/cybershield/internal/window"
)

// LabelFormat is the x-axis label of every sample.
const LabelFormat = "15:04:05"

func Label(t time.Time) string { return t.Format(LabelFormat) }

// entryLayouts are the timestamp forms backends send. Zoneless values are
// local time. Fractional seconds are accepted by every layout.
var entryLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

// EntryLabel formats a backend timestamp as a local HH:MM:SS label, falling
// back to the receipt time when ts is empty or unparseable.
func EntryLabel(ts string, received time.Time) string {
	if ts == "" {
		return Label(received)
	}
	for _, layout := range entryLayouts {
		if t, err := time.ParseInLocation(layout, ts, time.Local); err == nil {
			return Label(t.Local())
		}
	}
	return Label(received)
}

// Capacities sizes every buffer.
type Capacities struct {
	CPU     int
	Memory  int
	Network int
	Log     int
}

func DefaultCapacities() Capacities {
	return Capacities{CPU: 20, Memory: 20, Network: 15, Log: 50}
}

// LogLine is a traffic entry with its display time. Label is the backend's
// timestamp in local time, or the receipt time when that is missing.
type LogLine struct {
	Label string
	Entry model.LogEntry
}

// Counters are the headline numbers from the statistics stream.
type Counters struct {
	TotalTraffic    int
	ThreatsDetected int
	IPsBlocked      int
	DetectionRate   float64
}

// Sink receives the state after each successful mutation. Implementations
// must read the full buffers and redraw.
type Sink interface {
	SystemUpdated(s *State)
	TrafficUpdated(s *State)
	StatisticsUpdated(s *State)
}

// State is everything the dashboard shows. It is created empty, mutated only
// by the Apply methods and discarded as a whole on reset.
type State struct {
	CPU          window.Series[aggregate.Pair]
	Memory       window.Series[aggregate.Pair]
	Network      window.Series[float64]
	Log          *window.LogBuffer[LogLine]
	Distribution model.ThreatDistribution
	BlockedIPs   []string
	Counters     Counters
	// UnderAttack latches on the first snapshot reporting an attack.
	UnderAttack bool
	Current     model.CurrentMetrics
	LastUpdated map[Stream]time.Time

	sink Sink
}

// New creates an empty state. A nil sink is allowed.
func New(c Capacities, sink Sink) *State {
	return &State{
		CPU:          window.NewSeries[aggregate.Pair](c.CPU),
		Memory:       window.NewSeries[aggregate.Pair](c.Memory),
		Network:      window.NewSeries[float64](c.Network),
		Log:          window.NewLogBuffer[LogLine](c.Log),
		Distribution: model.ThreatDistribution{},
		LastUpdated:  make(map[Stream]time.Time),
		sink:         sink,
	}
}

// Apply folds a snapshot returned by Fetch into the state.
func (s *State) Apply(snapshot any, at time.Time) error {
	switch v := snapshot.(type) {
	case *model.SystemMetrics:
		if v == nil {
			return errNilSnapshot(snapshot)
		}
		s.ApplySystemMetrics(v, at)
	case *model.TrafficMonitor:
		if v == nil {
			return errNilSnapshot(snapshot)
		}
		s.ApplyTraffic(v, at)
	case *model.Statistics:
		if v == nil {
			return errNilSnapshot(snapshot)
		}
		s.ApplyStatistics(v, at)
	default:
		return fmt.Errorf("unexpected snapshot %T", snapshot)
	}
	return nil
}

func errNilSnapshot(snapshot any) error {
	return fmt.Errorf("empty %T snapshot", snapshot)
}

// ApplySystemMetrics appends one cpu, memory and network point.
func (s *State) ApplySystemMetrics(m *model.SystemMetrics, at time.Time) {
	label := Label(at)
	s.CPU.Append(window.Point[aggregate.Pair]{
		Label: label,
		Value: aggregate.Reduce(m.BeforeAttack.CPU, m.AfterAttack.CPU, m.Current.CPU),
	})
	s.Memory.Append(window.Point[aggregate.Pair]{
		Label: label,
		Value: aggregate.Reduce(m.BeforeAttack.Memory, m.AfterAttack.Memory, m.Current.Memory),
	})
	s.Network.Append(window.Point[float64]{
		Label: label,
		Value: aggregate.BytesToMiB(m.Current.NetworkSent),
	})
	s.Current = m.Current
	if m.AttackDetected {
		s.UnderAttack = true
	}
	s.LastUpdated[StreamSystem] = at

	if s.sink != nil {
		s.sink.SystemUpdated(s)
	}
}

// ApplyTraffic prepends the snapshot's log entry.
func (s *State) ApplyTraffic(t *model.TrafficMonitor, at time.Time) {
	s.Log.Prepend(LogLine{Label: EntryLabel(t.LogEntry.Timestamp, at), Entry: t.LogEntry})
	s.LastUpdated[StreamTraffic] = at

	if s.sink != nil {
		s.sink.TrafficUpdated(s)
	}
}

// ApplyStatistics replaces counters and the distribution. The blocked list
// is only replaced when the backend sends a non-empty one.
func (s *State) ApplyStatistics(st *model.Statistics, at time.Time) {
	s.Counters = Counters{
		TotalTraffic:    st.TotalTraffic,
		ThreatsDetected: st.MaliciousCount,
		IPsBlocked:      st.BlockedIPs,
		DetectionRate:   st.DetectionRate,
	}

	dist := make(model.ThreatDistribution, len(st.ThreatDistribution))
	for k, v := range st.ThreatDistribution {
		dist[k] = v
	}
	s.Distribution = dist

	if len(st.BlockedIPList) > 0 {
		s.BlockedIPs = append([]string(nil), st.BlockedIPList...)
	}
	s.LastUpdated[StreamStatistics] = at

	if s.sink != nil {
		s.sink.StatisticsUpdated(s)
	}
}
