// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package render

import (
	"fmt"
	"strings"

	"grimm.is/cybershield/internal/dashboard"
)

// FormatLogLine renders one traffic entry as a single line.
func FormatLogLine(l dashboard.LogLine) string {
	e := l.Entry
	verdict := "✅ ALLOWED"
	if e.Blocked {
		verdict = "⛔ BLOCKED"
	}
	return fmt.Sprintf("[%s] %s | %s → %s | Protocol: %s | Fusion Score: %.1f%% | RQA: DET %g%% / RR %g%% | %s",
		l.Label, e.Prediction, e.SrcIP, e.DstIP, e.Protocol, e.Confidence*100, e.RQADet, e.RQARR, verdict)
}

// LogList shows the newest traffic entries first.
type LogList struct {
	Title string
	rows  int
	width int
	lines []dashboard.LogLine
	view  string
}

func NewLogList(title string, rows int) *LogList {
	l := &LogList{Title: title, rows: rows}
	l.Refresh()
	return l
}

func (l *LogList) SetSize(width, rows int) {
	l.width = width
	l.rows = max(rows, 1)
}

// SetEntries replaces the list with the buffer contents, newest first.
func (l *LogList) SetEntries(lines []dashboard.LogLine) {
	l.lines = append([]dashboard.LogLine(nil), lines...)
}

func (l *LogList) Len() int { return len(l.lines) }

func (l *LogList) Refresh() {
	out := []string{StyleTitle.Render(l.Title)}
	if len(l.lines) == 0 {
		out = append(out, StyleSubtitle.Render("no traffic yet"))
	}
	for i, line := range l.lines {
		if i >= l.rows {
			break
		}
		text := FormatLogLine(line)
		if l.width > 0 && len([]rune(text)) > l.width {
			text = string([]rune(text)[:l.width-1]) + "…"
		}
		if line.Entry.IsThreat() {
			out = append(out, StyleThreat.Render(text))
		} else {
			out = append(out, StyleNormal.Render(text))
		}
	}
	l.view = strings.Join(out, "\n")
}

func (l *LogList) View() string { return l.view }
