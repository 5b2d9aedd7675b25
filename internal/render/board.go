// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"grimm.is/cybershield/internal/aggregate"
	"grimm.is/cybershield/internal/dashboard"
	"grimm.is/cybershield/internal/model"
)

// Board holds every widget and implements dashboard.Sink. Each callback
// pushes the full buffer contents into the affected widgets and refreshes
// them at once.
type Board struct {
	CPU     *Chart
	Memory  *Chart
	Network *Chart
	Threats *Distribution
	Log     *LogList

	BlockedIPs  []string
	Counters    dashboard.Counters
	UnderAttack bool
	Current     model.CurrentMetrics

	width   int
	printer *message.Printer
}

var _ dashboard.Sink = (*Board)(nil)

func NewBoard() *Board {
	b := &Board{
		CPU:     NewChart("CPU Usage", "%", KindLine),
		Memory:  NewChart("Memory Usage", "%", KindLine),
		Network: NewChart("Network Traffic", "MiB", KindBar),
		Threats: NewDistribution("Threat Distribution", 20),
		Log:     NewLogList("Live Traffic", 10),
		printer: message.NewPrinter(language.English),
	}
	b.CPU.Max = 100
	b.Memory.Max = 100
	return b
}

// SetSize lays the widgets out for a terminal of the given size.
func (b *Board) SetSize(width, height int) {
	b.width = width
	col := max(width/3-6, 20)
	b.CPU.SetSize(col, 2)
	b.Memory.SetSize(col, 2)
	b.Network.SetSize(col, 4)
	b.Threats.SetWidth(col - 14)
	b.Log.SetSize(width-6, max(height-24, 5))
	b.CPU.Refresh()
	b.Memory.Refresh()
	b.Network.Refresh()
	b.Threats.Refresh()
	b.Log.Refresh()
}

func (b *Board) SystemUpdated(s *dashboard.State) {
	before, after := splitPairs(s.CPU.Values())
	b.CPU.SetData(s.CPU.Labels(),
		Series{Name: "Before Attack", Values: before, Color: ColorBefore},
		Series{Name: "After Attack", Values: after, Color: ColorAfter},
	)
	b.CPU.Refresh()

	before, after = splitPairs(s.Memory.Values())
	b.Memory.SetData(s.Memory.Labels(),
		Series{Name: "Before Attack", Values: before, Color: ColorBefore},
		Series{Name: "After Attack", Values: after, Color: ColorAfter},
	)
	b.Memory.Refresh()

	b.Network.SetData(s.Network.Labels(),
		Series{Name: "Network Traffic", Values: s.Network.Values(), Color: ColorNetwork},
	)
	b.Network.Refresh()

	b.UnderAttack = s.UnderAttack
	b.Current = s.Current
}

func (b *Board) TrafficUpdated(s *dashboard.State) {
	b.Log.SetEntries(s.Log.Entries())
	b.Log.Refresh()
}

func (b *Board) StatisticsUpdated(s *dashboard.State) {
	b.Counters = s.Counters
	b.BlockedIPs = append([]string(nil), s.BlockedIPs...)
	b.Threats.SetData(s.Distribution)
	b.Threats.Refresh()
}

func splitPairs(pairs []aggregate.Pair) (before, after []float64) {
	before = make([]float64, len(pairs))
	after = make([]float64, len(pairs))
	for i, p := range pairs {
		before[i] = p.Before
		after[i] = p.After
	}
	return before, after
}

// StatusView is the system status line.
func (b *Board) StatusView() string {
	if b.UnderAttack {
		return StyleStatusBad.Render("⚠ UNDER ATTACK")
	}
	return StyleStatusGood.Render("🛡 SECURE")
}

func (b *Board) countersView() string {
	p := b.printer
	return lipgloss.JoinVertical(lipgloss.Left,
		StyleTitle.Render("Statistics"),
		p.Sprintf("Total traffic:    %d", b.Counters.TotalTraffic),
		p.Sprintf("Threats detected: %d", b.Counters.ThreatsDetected),
		p.Sprintf("IPs blocked:      %d", b.Counters.IPsBlocked),
		p.Sprintf("Detection rate:   %.1f%%", b.Counters.DetectionRate),
		StyleSubtitle.Render(fmt.Sprintf("Sent %s / Recv %s",
			humanize.IBytes(uint64(max(b.Current.NetworkSent, 0))),
			humanize.IBytes(uint64(max(b.Current.NetworkRecv, 0))))),
	)
}

func (b *Board) blockedView() string {
	rows := []string{StyleTitle.Render("Blocked IPs")}
	if len(b.BlockedIPs) == 0 {
		rows = append(rows, StyleSubtitle.Render("none"))
	}
	for _, ip := range b.BlockedIPs {
		rows = append(rows, StyleThreat.Render("⛔ "+ip))
	}
	return strings.Join(rows, "\n")
}

// View composes the full dashboard from the cached widget renderings.
func (b *Board) View() string {
	charts := lipgloss.JoinHorizontal(lipgloss.Top,
		StyleCard.Render(b.CPU.View()),
		StyleCard.Render(b.Memory.View()),
		StyleCard.Render(b.Network.View()),
	)
	side := lipgloss.JoinHorizontal(lipgloss.Top,
		StyleCard.Render(b.Threats.View()),
		StyleCard.Render(b.countersView()),
		StyleCard.Render(b.blockedView()),
	)
	logCard := StyleCard
	if b.width > 4 {
		logCard = logCard.Width(b.width - 4)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		charts,
		side,
		logCard.Render(b.Log.View()),
	)
}
