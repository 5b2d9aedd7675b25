// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package render

import "github.com/charmbracelet/lipgloss"

var (
	ColorAccent  = lipgloss.Color("39")
	ColorGood    = lipgloss.Color("42")
	ColorWarn    = lipgloss.Color("214")
	ColorBad     = lipgloss.Color("196")
	ColorMuted   = lipgloss.Color("240")
	ColorBefore  = lipgloss.Color("45")
	ColorAfter   = lipgloss.Color("203")
	ColorNetwork = lipgloss.Color("141")

	StyleApp = lipgloss.NewStyle().Padding(0, 1)

	StyleTopBar = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorMuted)

	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

	StyleSubtitle = lipgloss.NewStyle().Foreground(ColorMuted)

	StyleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	StyleStatusGood = lipgloss.NewStyle().Bold(true).Foreground(ColorGood)
	StyleStatusWarn = lipgloss.NewStyle().Bold(true).Foreground(ColorWarn)
	StyleStatusBad  = lipgloss.NewStyle().Bold(true).Foreground(ColorBad)

	StyleThreat  = lipgloss.NewStyle().Foreground(ColorBad)
	StyleNormal  = lipgloss.NewStyle()
	StyleMenuKey = lipgloss.NewStyle().Foreground(ColorWarn)
)

// categoryColors follows model.ThreatCategories order.
var categoryColors = []string{"#2ecc71", "#e74c3c", "#f39c12", "#9b59b6", "#34495e"}
