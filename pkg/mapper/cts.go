package mapper

import (
	"fmt"
	"sort"

	"github.com/dkoosis/ctsreport/pkg/ctslog"
	"github.com/dkoosis/ctsreport/pkg/message"
	"github.com/dkoosis/ctsreport/pkg/pattern"
)

// Options controls which console patterns are produced.
type Options struct {
	TopSlowest int // 0 disables the slowest-cases leaderboard
	MaxFailed  int // 0 disables the failed-cases table
}

// DefaultOptions returns the console defaults.
func DefaultOptions() Options {
	return Options{TopSlowest: 5, MaxFailed: 20}
}

// FromStats converts aggregate statistics and records into console patterns.
// Returns: Summary + slowest-cases Leaderboard + failed-cases TestTable.
func FromStats(s ctslog.Stats, records []ctslog.Record, opts Options) []pattern.Pattern {
	patterns := []pattern.Pattern{statsSummary(s)}
	if lb := slowest(records, opts.TopSlowest); lb != nil {
		patterns = append(patterns, lb)
	}
	if tt := failed(records, opts.MaxFailed); tt != nil {
		patterns = append(patterns, tt)
	}
	return patterns
}

func statsSummary(s ctslog.Stats) *pattern.Summary {
	metrics := []pattern.SummaryItem{
		{Label: "Total tests", Value: fmt.Sprintf("%d", s.Total), Kind: "info"},
		{Label: "Passed", Value: fmt.Sprintf("%d (%.1f%%)", s.Pass, s.PassRate), Kind: "success"},
		{Label: "Failed", Value: fmt.Sprintf("%d (%.1f%%)", s.Fail, s.Percent(s.Fail)), Kind: kindIf(s.Fail > 0, "error", "muted")},
		{Label: "Not Supported", Value: fmt.Sprintf("%d (%.1f%%)", s.NotSupported, s.Percent(s.NotSupported)), Kind: "warning"},
	}
	if s.Other > 0 {
		metrics = append(metrics, pattern.SummaryItem{
			Label: "Other", Value: fmt.Sprintf("%d (%.1f%%)", s.Other, s.Percent(s.Other)), Kind: "muted",
		})
	}
	metrics = append(metrics,
		pattern.SummaryItem{Label: "Total Duration", Value: s.FormatTotalDuration(), Kind: "info"},
		pattern.SummaryItem{Label: "Average Duration", Value: fmt.Sprintf("%.0f µs/test", s.AvgDurationMicros), Kind: "info"},
	)
	return &pattern.Summary{Label: "Test Statistics", Metrics: metrics}
}

func kindIf(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

func slowest(records []ctslog.Record, limit int) *pattern.Leaderboard {
	if limit <= 0 || len(records) == 0 {
		return nil
	}
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	// stable: ties keep log order
	sort.SliceStable(idx, func(a, b int) bool {
		return records[idx[a]].DurationMicros > records[idx[b]].DurationMicros
	})
	if len(idx) > limit {
		idx = idx[:limit]
	}

	items := make([]pattern.LeaderboardItem, 0, len(idx))
	for rank, i := range idx {
		r := records[i]
		items = append(items, pattern.LeaderboardItem{
			Name:   r.CasePath,
			Metric: FormatMicros(r.DurationMicros),
			Value:  float64(r.DurationMicros),
			Rank:   rank + 1,
		})
	}
	return &pattern.Leaderboard{
		Label:      "Slowest Test Cases",
		MetricName: "Duration",
		Items:      items,
		TotalCount: len(records),
		ShowRank:   true,
	}
}

func failed(records []ctslog.Record, limit int) *pattern.TestTable {
	if limit <= 0 {
		return nil
	}
	var items []pattern.TestTableItem
	total := 0
	for _, r := range records {
		if r.Status.Class() != ctslog.ClassFail {
			continue
		}
		total++
		if len(items) >= limit {
			continue
		}
		items = append(items, pattern.TestTableItem{
			Name:     r.CasePath,
			Status:   string(r.Status),
			Duration: FormatMicros(r.DurationMicros),
			Details:  message.Normalize(r.Message).Text,
		})
	}
	if total == 0 {
		return nil
	}
	return &pattern.TestTable{
		Label:      fmt.Sprintf("Failed Test Cases (%d)", total),
		Results:    items,
		TotalCount: total,
	}
}

// FormatMicros formats a microsecond duration with a readable unit.
func FormatMicros(us int64) string {
	switch {
	case us >= 1_000_000:
		return fmt.Sprintf("%.2fs", float64(us)/1_000_000)
	case us >= 1_000:
		return fmt.Sprintf("%.2fms", float64(us)/1_000)
	default:
		return fmt.Sprintf("%dµs", us)
	}
}
