// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"grimm.is/cybershield/internal/brand"
	"grimm.is/cybershield/internal/dashboard"
	"grimm.is/cybershield/internal/logging"
	"grimm.is/cybershield/internal/metrics"
	"grimm.is/cybershield/internal/render"
)

// Options configures a Model.
type Options struct {
	Backend    dashboard.Backend
	Context    context.Context
	Periods    map[dashboard.Stream]time.Duration
	Capacities dashboard.Capacities
	// Serialize drops a stream's tick while its previous fetch is pending.
	Serialize      bool
	ReportDir      string
	ChartSnapshots bool
	Metrics        *metrics.Registry
	Logger         *logging.Logger
	// Now overrides the clock used for sample labels.
	Now func() time.Time
}

// Model is the dashboard program. All state changes happen in Update.
type Model struct {
	opts   Options
	logger *logging.Logger
	keys   keyMap
	help   help.Model

	State      *dashboard.State
	Board      *render.Board
	Generation int

	StreamErrors  map[dashboard.Stream]string
	Notice        string
	NoticeIsError bool
	Confirming    bool
	Confirm       *huh.Form

	inFlight     map[dashboard.Stream]bool
	confirmValue *bool
	noticeID     int
	reportBusy   bool
	resetBusy    bool

	Width  int
	Height int
}

// NewModel creates a model with empty buffers. Nothing is fetched until the
// program calls Init.
func NewModel(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Capacities == (dashboard.Capacities{}) {
		opts.Capacities = dashboard.DefaultCapacities()
	}
	if opts.ReportDir == "" {
		opts.ReportDir = "."
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}

	m := Model{
		opts:   opts,
		logger: opts.Logger.WithComponent("hud"),
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	return m.reinitialize()
}

func (m Model) now() time.Time {
	if m.opts.Now != nil {
		return m.opts.Now()
	}
	return time.Now()
}

func (m Model) Init() tea.Cmd {
	return m.startStreams()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		return m.handleTick(msg)
	case FetchedMsg:
		return m.handleFetched(msg)
	case ReportDoneMsg:
		return m.handleReportDone(msg)
	case ResetDoneMsg:
		return m.handleResetDone(msg)

	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.Notice = ""
			m.NoticeIsError = false
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		m.Board.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.Confirming {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m.updateConfirm(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Report):
			return m.generateReport()
		case key.Matches(msg, m.keys.Reset):
			return m.askReset()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		return m, nil
	}

	// huh advances through its own messages.
	if m.Confirming {
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) View() string {
	doc := lipgloss.JoinVertical(lipgloss.Left,
		m.viewTopBar(),
		m.Board.View(),
		m.viewFooter(),
	)

	if m.Confirming && m.Confirm != nil {
		dialog := render.StyleCard.BorderForeground(render.ColorWarn).Render(m.Confirm.View())
		if m.Width > 0 && m.Height > 0 {
			return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, dialog)
		}
		return doc + "\n" + dialog
	}
	return render.StyleApp.Render(doc)
}

func (m Model) viewTopBar() string {
	updated := "never"
	var latest time.Time
	for _, t := range m.State.LastUpdated {
		if t.After(latest) {
			latest = t
		}
	}
	if !latest.IsZero() {
		updated = dashboard.Label(latest)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Top,
		render.StyleTitle.Render(brand.DisplayName+"  "),
		m.Board.StatusView(),
		render.StyleSubtitle.Render(fmt.Sprintf("   last update %s", updated)),
	)
	return render.StyleTopBar.Render(bar)
}

func (m Model) viewFooter() string {
	var rows []string
	if m.Notice != "" {
		style := render.StyleStatusGood
		if m.NoticeIsError {
			style = render.StyleStatusBad
		}
		rows = append(rows, style.Render(m.Notice))
	}

	if len(m.StreamErrors) > 0 {
		streams := make([]dashboard.Stream, 0, len(m.StreamErrors))
		for s := range m.StreamErrors {
			streams = append(streams, s)
		}
		slices.Sort(streams)

		var parts []string
		for _, s := range streams {
			parts = append(parts, fmt.Sprintf("%s: %s", s, m.StreamErrors[s]))
		}
		rows = append(rows, render.StyleStatusWarn.Render("⚠ "+strings.Join(parts, " | ")))
	}

	rows = append(rows, m.help.View(m.keys))
	return strings.Join(rows, "\n")
}
