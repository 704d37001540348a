package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dkoosis/ctsreport/pkg/pattern"
	"github.com/mattn/go-runewidth"
)

// Terminal renders patterns as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats all patterns for terminal display.
func (t *Terminal) Render(patterns []pattern.Pattern) string {
	var sections []string
	for _, p := range patterns {
		s := t.renderOne(p)
		if s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n")
}

func (t *Terminal) renderOne(p pattern.Pattern) string {
	switch v := p.(type) {
	case *pattern.Summary:
		return t.renderSummary(v)
	case *pattern.Leaderboard:
		return t.renderLeaderboard(v)
	case *pattern.TestTable:
		return t.renderTestTable(v)
	default:
		return ""
	}
}

func (t *Terminal) renderSummary(s *pattern.Summary) string {
	var sb strings.Builder
	if s.Label != "" {
		sb.WriteString(t.theme.Bold.Render(s.Label))
		sb.WriteString("\n")
	}
	labelWidth := 0
	for _, m := range s.Metrics {
		labelWidth = max(labelWidth, runewidth.StringWidth(m.Label)+1)
	}
	for _, m := range s.Metrics {
		sb.WriteString("  ")
		icon, style := t.iconStyle(m.Kind)
		sb.WriteString(style.Render(icon + " " + padRight(m.Label+":", labelWidth) + " " + m.Value))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderLeaderboard(l *pattern.Leaderboard) string {
	if len(l.Items) == 0 {
		return ""
	}
	var sb strings.Builder
	if l.Label != "" {
		header := l.Label
		if l.TotalCount > len(l.Items) {
			header += fmt.Sprintf(" (top %d of %d)", len(l.Items), l.TotalCount)
		}
		sb.WriteString(t.theme.Bold.Render(header))
		sb.WriteString("\n")
	}

	maxMetric := 0
	for _, item := range l.Items {
		maxMetric = max(maxMetric, runewidth.StringWidth(item.Metric))
	}
	// rank prefix is 4 cells, indent 2, gap 2
	maxName := nameWidth(l.Items, func(i pattern.LeaderboardItem) string { return i.Name }, t.width, 8+maxMetric)

	for _, item := range l.Items {
		sb.WriteString("  ")
		if l.ShowRank {
			sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("%2d. ", item.Rank)))
		}
		sb.WriteString(t.theme.Primary.Render(padRight(truncate(item.Name, maxName), maxName)))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Warning.Render(padLeft(item.Metric, maxMetric)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderTestTable(tt *pattern.TestTable) string {
	if len(tt.Results) == 0 {
		return ""
	}
	var sb strings.Builder
	if tt.Label != "" {
		sb.WriteString(t.theme.Bold.Render(tt.Label))
		sb.WriteString("\n")
	}

	maxDur := 0
	for _, r := range tt.Results {
		maxDur = max(maxDur, runewidth.StringWidth(r.Duration))
	}
	maxName := nameWidth(tt.Results, func(i pattern.TestTableItem) string { return i.Name }, t.width, 6+maxDur)

	for _, r := range tt.Results {
		sb.WriteString("  ")
		sb.WriteString(t.theme.Error.Render(t.theme.Icons.Fail + " "))
		sb.WriteString(padRight(truncate(r.Name, maxName), maxName))
		if r.Duration != "" {
			sb.WriteString("  ")
			sb.WriteString(t.theme.Muted.Render(padLeft(r.Duration, maxDur)))
		}
		if r.Details != "" {
			lines := strings.Split(r.Details, "\n")
			for _, line := range lines[:min(len(lines), maxDetailLines)] {
				sb.WriteString("\n    ")
				sb.WriteString(t.theme.Muted.Render(truncate(line, t.width-4)))
			}
			if len(lines) > maxDetailLines {
				sb.WriteString("\n    ")
				sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("... (%d more lines)", len(lines)-maxDetailLines)))
			}
		}
		sb.WriteString("\n")
	}
	if tt.TotalCount > len(tt.Results) {
		sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("  ... %d more", tt.TotalCount-len(tt.Results))))
		sb.WriteString("\n")
	}
	return sb.String()
}

// nameWidth returns the widest name, capped so a row fits within width
// after reserving the given number of cells.
func nameWidth[T any](items []T, name func(T) string, width, reserved int) int {
	w := 0
	for _, it := range items {
		w = max(w, runewidth.StringWidth(name(it)))
	}
	return min(w, max(width-reserved, 20))
}

func (t *Terminal) iconStyle(kind string) (string, lipgloss.Style) {
	switch kind {
	case "success":
		return t.theme.Icons.Pass, t.theme.Success
	case "error":
		return t.theme.Icons.Fail, t.theme.Error
	case "warning":
		return t.theme.Icons.Warn, t.theme.Warning
	case "muted":
		return t.theme.Icons.Bullet, t.theme.Muted
	default:
		return t.theme.Icons.Info, t.theme.Primary
	}
}

func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}
