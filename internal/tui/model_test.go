// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/cybershield/internal/dashboard"
	"grimm.is/cybershield/internal/logging"
	"grimm.is/cybershield/internal/metrics"
)

func newTestModel(t *testing.T, backend *MockBackend) Model {
	t.Helper()
	return NewModel(Options{
		Backend:   backend,
		Serialize: true,
		ReportDir: t.TempDir(),
		Metrics:   metrics.NewRegistry(),
		Logger:    logging.New(logging.Config{Level: logging.LevelError}),
		Now: func() time.Time {
			return time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)
		},
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func keyRune(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestNewModel_Empty(t *testing.T) {
	m := newTestModel(t, &MockBackend{})

	assert.Equal(t, 1, m.Generation)
	assert.Equal(t, 0, m.State.CPU.Len())
	assert.Equal(t, 20, m.State.CPU.Cap())
	assert.Equal(t, 20, m.State.Memory.Cap())
	assert.Equal(t, 15, m.State.Network.Cap())
	assert.Equal(t, 50, m.State.Log.Cap())
}

func TestInit_FiresEveryStreamImmediately(t *testing.T) {
	m := newTestModel(t, &MockBackend{})

	msg := m.Init()()
	batch, ok := msg.(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 3)

	seen := map[dashboard.Stream]bool{}
	for _, cmd := range batch {
		tick, ok := cmd().(TickMsg)
		require.True(t, ok)
		assert.Equal(t, m.Generation, tick.Gen)
		seen[tick.Stream] = true
	}
	assert.Len(t, seen, 3)
}

func TestTick_SerializesPerStream(t *testing.T) {
	m := newTestModel(t, &MockBackend{})

	m, cmd := update(t, m, TickMsg{Stream: dashboard.StreamSystem, Gen: m.Generation})
	assert.NotNil(t, cmd)
	assert.True(t, m.inFlight[dashboard.StreamSystem])

	m, _ = update(t, m, TickMsg{Stream: dashboard.StreamSystem, Gen: m.Generation})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.opts.Metrics.Ticks.WithLabelValues("system_metrics", metrics.ResultDropped)))

	// Other streams are independent.
	m, _ = update(t, m, TickMsg{Stream: dashboard.StreamTraffic, Gen: m.Generation})
	assert.True(t, m.inFlight[dashboard.StreamTraffic])
}

func TestTick_WithoutSerializeAlwaysFetches(t *testing.T) {
	m := newTestModel(t, &MockBackend{})
	m.opts.Serialize = false

	m, _ = update(t, m, TickMsg{Stream: dashboard.StreamStatistics, Gen: m.Generation})
	m, _ = update(t, m, TickMsg{Stream: dashboard.StreamStatistics, Gen: m.Generation})
	assert.Equal(t, 0.0, testutil.ToFloat64(m.opts.Metrics.Ticks.WithLabelValues("statistics", metrics.ResultDropped)))
}

func TestFetched_AppliesSnapshot(t *testing.T) {
	m := newTestModel(t, &MockBackend{})
	m, _ = update(t, m, TickMsg{Stream: dashboard.StreamSystem, Gen: m.Generation})

	m, _ = update(t, m, m.fetch(dashboard.StreamSystem)())
	assert.False(t, m.inFlight[dashboard.StreamSystem])
	require.Equal(t, 1, m.State.CPU.Len())
	p, _ := m.State.CPU.Last()
	assert.Equal(t, "09:26:53", p.Label)
	assert.Equal(t, 12.0, p.Value.Before)
	assert.Equal(t, 0.0, p.Value.After)
	assert.Equal(t, []string{"09:26:53"}, m.Board.CPU.Labels())
}

func TestFetched_FailureKeepsBuffers(t *testing.T) {
	backend := &MockBackend{}
	m := newTestModel(t, backend)

	for i := 0; i < 4; i++ {
		m, _ = update(t, m, m.fetch(dashboard.StreamSystem)())
	}
	before := m.State.CPU.Items()

	backend.SetErr(errors.New("connection refused"))
	m, _ = update(t, m, m.fetch(dashboard.StreamSystem)())
	assert.Equal(t, before, m.State.CPU.Items())
	assert.Contains(t, m.StreamErrors[dashboard.StreamSystem], "connection refused")
	assert.Contains(t, m.View(), "connection refused")

	backend.SetErr(nil)
	m, _ = update(t, m, m.fetch(dashboard.StreamSystem)())
	assert.Equal(t, 5, m.State.CPU.Len())
	assert.NotContains(t, m.StreamErrors, dashboard.StreamSystem)
}

func TestFetched_StaleGenerationIgnored(t *testing.T) {
	m := newTestModel(t, &MockBackend{})
	old := m.Generation
	stale := m.fetch(dashboard.StreamTraffic)()

	m = m.reinitialize()
	m, _ = update(t, m, stale)
	assert.Equal(t, 0, m.State.Log.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.opts.Metrics.Ticks.WithLabelValues("traffic", metrics.ResultStale)))

	_, cmd := update(t, m, TickMsg{Stream: dashboard.StreamTraffic, Gen: old})
	assert.Nil(t, cmd, "ticks from a retired generation end their chain")
}

func TestReset_RequiresConfirmation(t *testing.T) {
	backend := &MockBackend{}
	m := newTestModel(t, backend)

	m, _ = update(t, m, keyRune("r"))
	assert.True(t, m.Confirming)
	assert.NotNil(t, m.Confirm)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Confirming)
	assert.Equal(t, "Reset cancelled", m.Notice)
	assert.False(t, backend.ResetCalled)
}

func TestReset_ConfirmedReinitializes(t *testing.T) {
	backend := &MockBackend{}
	m := newTestModel(t, backend)
	m, _ = update(t, m, m.fetch(dashboard.StreamSystem)())
	m, _ = update(t, m, m.fetch(dashboard.StreamTraffic)())
	require.Equal(t, 1, m.State.CPU.Len())
	gen := m.Generation

	m, _ = update(t, m, keyRune("r"))
	m, cmd := m.resolveConfirm(true)
	require.NotNil(t, cmd)

	m, next := update(t, m, cmd())
	assert.True(t, backend.ResetCalled)
	assert.Equal(t, gen+1, m.Generation)
	assert.Equal(t, 0, m.State.CPU.Len())
	assert.Equal(t, 0, m.State.Log.Len())
	assert.Empty(t, m.Board.CPU.Labels())
	assert.Equal(t, "System session reset (Database preserved)", m.Notice)
	assert.NotNil(t, next)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.opts.Metrics.Resets))
}

func TestReset_Failure(t *testing.T) {
	backend := &MockBackend{}
	m := newTestModel(t, backend)
	m, _ = update(t, m, m.fetch(dashboard.StreamSystem)())
	gen := m.Generation

	backend.SetErr(errors.New("503"))
	m, cmd := m.resolveConfirm(true)
	m, _ = update(t, m, cmd())

	assert.Equal(t, gen, m.Generation)
	assert.Equal(t, 1, m.State.CPU.Len())
	assert.True(t, m.NoticeIsError)
	assert.Contains(t, m.Notice, "Reset failed")
}

func TestGenerateReport(t *testing.T) {
	m := newTestModel(t, &MockBackend{})

	m, cmd := update(t, m, keyRune("g"))
	require.NotNil(t, cmd)
	assert.True(t, m.reportBusy)

	// A second press while busy is ignored.
	_, again := update(t, m, keyRune("g"))
	assert.Nil(t, again)

	done, ok := cmd().(ReportDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.FileExists(t, done.Result.Path)

	m, _ = update(t, m, done)
	assert.False(t, m.reportBusy)
	assert.False(t, m.NoticeIsError)
	assert.Contains(t, m.Notice, "Report generated successfully")
	assert.Contains(t, m.Notice, "Threats detected: 3")
}

func TestGenerateReport_Failure(t *testing.T) {
	backend := &MockBackend{}
	backend.SetErr(errors.New("timeout"))
	m := newTestModel(t, backend)

	m, cmd := update(t, m, keyRune("g"))
	m, _ = update(t, m, cmd())
	assert.True(t, m.NoticeIsError)
	assert.Contains(t, m.Notice, "Report generation failed")
}

func TestNoticeExpiry(t *testing.T) {
	m := newTestModel(t, &MockBackend{})
	m = m.setNotice("one", false)
	stale := m.noticeID
	m = m.setNotice("two", false)

	m, _ = update(t, m, clearNoticeMsg{id: stale})
	assert.Equal(t, "two", m.Notice)
	m, _ = update(t, m, clearNoticeMsg{id: m.noticeID})
	assert.Empty(t, m.Notice)
}

func TestView(t *testing.T) {
	m := newTestModel(t, &MockBackend{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 180, Height: 50})

	view := m.View()
	assert.Contains(t, view, "CYBERSHIELD")
	assert.Contains(t, view, "SECURE")
	assert.Contains(t, view, "waiting for data")
	assert.Contains(t, view, "generate report")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, &MockBackend{})
	_, cmd := update(t, m, keyRune("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
