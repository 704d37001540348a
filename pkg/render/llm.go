package render

import (
	"fmt"
	"strings"

	"github.com/dkoosis/ctsreport/pkg/pattern"
)

// labelColumn is the width of the label column in the statistics block.
const labelColumn = 18

// maxDetailLines bounds the diagnostic lines printed per failed case.
const maxDetailLines = 3

// LLM renders patterns as plain text: zero ANSI codes, fixed columns,
// deterministic order. It is the format used when stdout is not a TTY.
type LLM struct{}

// NewLLM creates an LLM renderer.
func NewLLM() *LLM {
	return &LLM{}
}

// Render formats all patterns as plain text sections separated by blank lines.
func (l *LLM) Render(patterns []pattern.Pattern) string {
	var sections []string
	for _, p := range patterns {
		var s string
		switch v := p.(type) {
		case *pattern.Summary:
			s = l.renderSummary(v)
		case *pattern.Leaderboard:
			s = l.renderLeaderboard(v)
		case *pattern.TestTable:
			s = l.renderTestTable(v)
		}
		if s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n")
}

func (l *LLM) renderSummary(s *pattern.Summary) string {
	var sb strings.Builder
	if s.Label != "" {
		sb.WriteString("--- " + s.Label + " ---\n")
	}
	for _, m := range s.Metrics {
		fmt.Fprintf(&sb, "%-*s%s\n", labelColumn, m.Label+":", m.Value)
	}
	return sb.String()
}

func (l *LLM) renderLeaderboard(lb *pattern.Leaderboard) string {
	if len(lb.Items) == 0 {
		return ""
	}
	var sb strings.Builder
	header := lb.Label
	if lb.TotalCount > len(lb.Items) {
		header += fmt.Sprintf(" (top %d of %d)", len(lb.Items), lb.TotalCount)
	}
	sb.WriteString("--- " + header + " ---\n")
	for _, item := range lb.Items {
		if lb.ShowRank {
			fmt.Fprintf(&sb, "%2d. ", item.Rank)
		}
		sb.WriteString(item.Name + " (" + item.Metric + ")\n")
	}
	return sb.String()
}

func (l *LLM) renderTestTable(tt *pattern.TestTable) string {
	if len(tt.Results) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("--- " + tt.Label + " ---\n")
	for _, item := range tt.Results {
		sb.WriteString(strings.ToUpper(item.Status) + " " + item.Name)
		if item.Duration != "" {
			sb.WriteString(" (" + item.Duration + ")")
		}
		sb.WriteString("\n")
		if item.Details == "" {
			continue
		}
		lines := strings.Split(item.Details, "\n")
		for _, line := range lines[:min(len(lines), maxDetailLines)] {
			sb.WriteString("    " + line + "\n")
		}
		if len(lines) > maxDetailLines {
			fmt.Fprintf(&sb, "    ... (%d more lines)\n", len(lines)-maxDetailLines)
		}
	}
	if tt.TotalCount > len(tt.Results) {
		fmt.Fprintf(&sb, "... %d more\n", tt.TotalCount-len(tt.Results))
	}
	return sb.String()
}
