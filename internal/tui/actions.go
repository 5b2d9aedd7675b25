// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"grimm.is/cybershield/internal/dashboard"
	"grimm.is/cybershield/internal/render"
	"grimm.is/cybershield/internal/report"
)

const (
	actionReport = "generate_report"
	actionReset  = "reset"
)

// ReportDoneMsg is the outcome of a report request.
type ReportDoneMsg struct {
	Result report.Result
	Err    error
}

// ResetDoneMsg is the outcome of a backend reset.
type ResetDoneMsg struct {
	Message string
	Err     error
}

type clearNoticeMsg struct{ id int }

const noticeTTL = 8 * time.Second

func (m Model) generateReport() (Model, tea.Cmd) {
	if m.reportBusy {
		return m, nil
	}
	m.reportBusy = true
	m = m.setNotice("Generating report...", false)

	writer := report.Writer{Dir: m.opts.ReportDir}
	if m.opts.ChartSnapshots {
		writer.Charts = map[string]*render.Chart{
			"cpu":     copyChart(m.Board.CPU),
			"memory":  copyChart(m.Board.Memory),
			"network": copyChart(m.Board.Network),
		}
	}
	backend, ctx, now := m.opts.Backend, m.opts.Context, m.now

	return m, func() tea.Msg {
		env, err := backend.GenerateReport(ctx)
		if err != nil {
			return ReportDoneMsg{Err: err}
		}
		res, err := writer.Save(env, now())
		return ReportDoneMsg{Result: res, Err: err}
	}
}

// copyChart detaches a chart from the board so the save goroutine never
// reads widgets the update loop is writing.
func copyChart(c *render.Chart) *render.Chart {
	out := render.NewChart(c.Title, c.Unit, c.Kind)
	out.Max = c.Max
	out.SetData(c.Labels(), c.Series()...)
	return out
}

func (m Model) handleReportDone(msg ReportDoneMsg) (Model, tea.Cmd) {
	m.reportBusy = false
	m.opts.Metrics.ObserveAction(actionReport, msg.Err)
	if msg.Err != nil {
		m.logger.Error("report generation failed", "error", msg.Err)
		m = m.setNotice("Report generation failed: "+msg.Err.Error(), true)
		return m, m.expireNotice()
	}
	m.logger.Info("report saved", "path", msg.Result.Path, "backend_path", msg.Result.SavedTo,
		"snapshots", len(msg.Result.Snapshots))
	m = m.setNotice(msg.Result.Message(), false)
	return m, m.expireNotice()
}

func newConfirmForm(value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset the dashboard?").
				Description("All data will be cleared.").
				Affirmative("Reset").
				Negative("Cancel").
				Value(value),
		),
	).WithTheme(huh.ThemeBase16()).WithShowHelp(false)
}

func (m Model) askReset() (Model, tea.Cmd) {
	if m.resetBusy || m.Confirming {
		return m, nil
	}
	m.confirmValue = new(bool)
	m.Confirm = newConfirmForm(m.confirmValue)
	m.Confirming = true
	return m, m.Confirm.Init()
}

// updateConfirm forwards msg to the dialog and acts once it completes.
func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		return m.resolveConfirm(false)
	}

	form, cmd := m.Confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Confirm = f
	}

	switch m.Confirm.State {
	case huh.StateCompleted:
		return m.resolveConfirm(*m.confirmValue)
	case huh.StateAborted:
		return m.resolveConfirm(false)
	}
	return m, cmd
}

func (m Model) resolveConfirm(accepted bool) (Model, tea.Cmd) {
	m.Confirming = false
	m.Confirm = nil
	if !accepted {
		m = m.setNotice("Reset cancelled", false)
		return m, m.expireNotice()
	}

	m.resetBusy = true
	backend, ctx := m.opts.Backend, m.opts.Context
	return m, func() tea.Msg {
		res, err := backend.Reset(ctx)
		if err != nil {
			return ResetDoneMsg{Err: err}
		}
		return ResetDoneMsg{Message: res.Message}
	}
}

func (m Model) handleResetDone(msg ResetDoneMsg) (Model, tea.Cmd) {
	m.resetBusy = false
	m.opts.Metrics.ObserveAction(actionReset, msg.Err)
	if msg.Err != nil {
		m.logger.Error("reset failed", "error", msg.Err)
		m = m.setNotice("Reset failed: "+msg.Err.Error(), true)
		return m, m.expireNotice()
	}

	m.logger.Info("dashboard reset", "message", msg.Message)
	m.opts.Metrics.ObserveReset()
	m = m.reinitialize()
	m = m.setNotice(msg.Message, false)
	return m, tea.Batch(m.startStreams(), m.expireNotice())
}

// reinitialize discards every buffer and widget. Bumping the generation
// retires the old tick chains and any fetch still in flight.
func (m Model) reinitialize() Model {
	m.Generation++
	m.Board = render.NewBoard()
	if m.Width > 0 {
		m.Board.SetSize(m.Width, m.Height)
	}
	m.State = dashboard.New(m.opts.Capacities, m.Board)
	m.inFlight = make(map[dashboard.Stream]bool)
	m.StreamErrors = make(map[dashboard.Stream]string)
	m.recordBufferLengths()
	return m
}

func (m Model) setNotice(text string, isErr bool) Model {
	m.noticeID++
	m.Notice = text
	m.NoticeIsError = isErr
	return m
}

func (m Model) expireNotice() tea.Cmd {
	id := m.noticeID
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{id: id} })
}
