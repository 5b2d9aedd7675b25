// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"grimm.is/cybershield/internal/dashboard"
	"grimm.is/cybershield/internal/errors"
	"grimm.is/cybershield/internal/metrics"
)

// TickMsg fires a refresh of one stream. Gen ties it to the state
// generation that armed it; ticks from a discarded generation end their
// chain.
type TickMsg struct {
	Stream dashboard.Stream
	Gen    int
	At     time.Time
}

// FetchedMsg carries a completed fetch back into the update loop.
type FetchedMsg struct {
	Stream   dashboard.Stream
	Gen      int
	Snapshot any
	Err      error
	Elapsed  time.Duration
}

func (m Model) period(s dashboard.Stream) time.Duration {
	if d := m.opts.Periods[s]; d > 0 {
		return d
	}
	return s.DefaultPeriod()
}

// startStreams fires one immediate tick per stream. Each tick re-arms the
// next one, so this is the only place a chain begins.
func (m Model) startStreams() tea.Cmd {
	gen := m.Generation
	cmds := make([]tea.Cmd, 0, len(dashboard.Streams))
	for _, s := range dashboard.Streams {
		s := s
		cmds = append(cmds, func() tea.Msg {
			return TickMsg{Stream: s, Gen: gen, At: time.Now()}
		})
	}
	return tea.Batch(cmds...)
}

func (m Model) scheduleTick(s dashboard.Stream) tea.Cmd {
	gen := m.Generation
	return tea.Tick(m.period(s), func(t time.Time) tea.Msg {
		return TickMsg{Stream: s, Gen: gen, At: t}
	})
}

func (m Model) fetch(s dashboard.Stream) tea.Cmd {
	backend, ctx, gen := m.opts.Backend, m.opts.Context, m.Generation
	return func() tea.Msg {
		start := time.Now()
		snap, err := dashboard.Fetch(ctx, backend, s)
		return FetchedMsg{Stream: s, Gen: gen, Snapshot: snap, Err: err, Elapsed: time.Since(start)}
	}
}

func (m Model) handleTick(msg TickMsg) (Model, tea.Cmd) {
	if msg.Gen != m.Generation {
		return m, nil
	}

	next := m.scheduleTick(msg.Stream)
	if m.opts.Serialize && m.inFlight[msg.Stream] {
		m.logger.Debug("tick dropped, previous fetch still running", "stream", msg.Stream.String())
		m.opts.Metrics.ObserveTick(msg.Stream.String(), metrics.ResultDropped, 0)
		return m, next
	}

	m.inFlight[msg.Stream] = true
	return m, tea.Batch(next, m.fetch(msg.Stream))
}

func (m Model) handleFetched(msg FetchedMsg) (Model, tea.Cmd) {
	if msg.Gen != m.Generation {
		m.opts.Metrics.ObserveTick(msg.Stream.String(), metrics.ResultStale, 0)
		return m, nil
	}
	m.inFlight[msg.Stream] = false

	if msg.Err != nil {
		args := append([]any{"stream", msg.Stream.String(), "endpoint", msg.Stream.Endpoint(), "error", msg.Err},
			errors.LogArgs(msg.Err)...)
		m.logger.Warn("refresh failed", args...)
		m.opts.Metrics.ObserveTick(msg.Stream.String(), metrics.ResultFailed, msg.Elapsed)
		m.StreamErrors[msg.Stream] = msg.Err.Error()
		return m, nil
	}

	if err := m.State.Apply(msg.Snapshot, m.now()); err != nil {
		m.logger.Error("unexpected snapshot", "stream", msg.Stream.String(), "error", err)
		return m, nil
	}
	delete(m.StreamErrors, msg.Stream)
	m.opts.Metrics.ObserveTick(msg.Stream.String(), metrics.ResultOK, msg.Elapsed)
	m.recordBufferLengths()
	return m, nil
}

func (m Model) recordBufferLengths() {
	reg := m.opts.Metrics
	reg.SetBufferLength("cpu", m.State.CPU.Len())
	reg.SetBufferLength("memory", m.State.Memory.Len())
	reg.SetBufferLength("network", m.State.Network.Len())
	reg.SetBufferLength("log", m.State.Log.Len())
}
