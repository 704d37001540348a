package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dkoosis/ctsreport/pkg/ctslog"
	"github.com/dkoosis/ctsreport/pkg/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsPatterns() []pattern.Pattern {
	return []pattern.Pattern{
		&pattern.Summary{
			Label: "Test Statistics",
			Metrics: []pattern.SummaryItem{
				{Label: "Total tests", Value: "3", Kind: "info"},
				{Label: "Passed", Value: "1 (33.3%)", Kind: "success"},
				{Label: "Failed", Value: "1 (33.3%)", Kind: "error"},
				{Label: "Not Supported", Value: "1 (33.3%)", Kind: "warning"},
				{Label: "Total Duration", Value: "0.60ms", Kind: "info"},
				{Label: "Average Duration", Value: "200 µs/test", Kind: "info"},
			},
		},
		&pattern.Leaderboard{
			Label:      "Slowest Test Cases",
			MetricName: "Duration",
			ShowRank:   true,
			TotalCount: 3,
			Items: []pattern.LeaderboardItem{
				{Name: "dEQP-VK.c", Metric: "300µs", Value: 300, Rank: 1},
				{Name: "dEQP-VK.b", Metric: "200µs", Value: 200, Rank: 2},
			},
		},
		&pattern.TestTable{
			Label:      "Failed Test Cases (1)",
			TotalCount: 1,
			Results: []pattern.TestTableItem{
				{Name: "dEQP-VK.b", Status: "Fail", Duration: "200µs", Details: "l1\nl2\nl3\nl4\nl5"},
			},
		},
	}
}

func TestLLM_StatisticsBlock(t *testing.T) {
	out := NewLLM().Render(statsPatterns()[:1])
	want := "--- Test Statistics ---\n" +
		"Total tests:      3\n" +
		"Passed:           1 (33.3%)\n" +
		"Failed:           1 (33.3%)\n" +
		"Not Supported:    1 (33.3%)\n" +
		"Total Duration:   0.60ms\n" +
		"Average Duration: 200 µs/test\n"
	assert.Equal(t, want, out)
}

func TestLLM_LeaderboardAndFailures(t *testing.T) {
	out := NewLLM().Render(statsPatterns())

	assert.Contains(t, out, "--- Slowest Test Cases (top 2 of 3) ---\n")
	assert.Contains(t, out, " 1. dEQP-VK.c (300µs)\n")
	assert.Contains(t, out, "FAIL dEQP-VK.b (200µs)\n")
	assert.Contains(t, out, "    l3\n")
	assert.NotContains(t, out, "    l4\n")
	assert.Contains(t, out, "... (2 more lines)")
	assert.NotContains(t, out, "\x1b[", "plain output must not contain ANSI codes")
}

func TestTerminal_MonoRendersAllSections(t *testing.T) {
	out := NewTerminal(MonoTheme(), 80).Render(statsPatterns())

	assert.Contains(t, out, "Test Statistics")
	assert.Contains(t, out, "+ Passed:")
	assert.Contains(t, out, "x Failed:")
	assert.Contains(t, out, "Slowest Test Cases (top 2 of 3)")
	assert.Contains(t, out, "dEQP-VK.c")
	assert.Contains(t, out, "Failed Test Cases (1)")
	assert.Contains(t, out, "x dEQP-VK.b")
	assert.Contains(t, out, "    l3")
	assert.NotContains(t, out, "l4")
	assert.Contains(t, out, "... (2 more lines)")
}

func TestTerminal_TruncatesLongNames(t *testing.T) {
	long := strings.Repeat("x", 200)
	out := NewTerminal(MonoTheme(), 60).Render([]pattern.Pattern{
		&pattern.Leaderboard{Label: "Slow", Items: []pattern.LeaderboardItem{{Name: long, Metric: "1s", Rank: 1}}},
	})
	assert.NotContains(t, out, long)
	assert.Contains(t, out, "...")
}

func TestJSON_Document(t *testing.T) {
	info := ReportInfo{
		ID:          "01HZX0000000000000000000AB",
		InputFormat: "raw-log",
		Files:       []string{"cts_report/r_page_1.html", "cts_report/r_page_2.html"},
	}
	out := NewJSON(info).Render(statsPatterns())

	var doc struct {
		Version  string     `json:"version"`
		Report   ReportInfo `json:"report"`
		Sections []struct {
			Type string `json:"type"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, SchemaVersion, doc.Version)
	assert.Equal(t, info, doc.Report)
	require.Len(t, doc.Sections, 3)
	assert.Equal(t, "summary", doc.Sections[0].Type)
	assert.Equal(t, "leaderboard", doc.Sections[1].Type)
	assert.Equal(t, "test-table", doc.Sections[2].Type)
}

func TestJSON_NilFilesEncodeAsEmptyList(t *testing.T) {
	out := NewJSON(ReportInfo{ID: "x", InputFormat: "xml"}).Render(nil)
	assert.Contains(t, out, `"files": []`)
	assert.Contains(t, out, `"sections": []`)
}

func TestForFormat(t *testing.T) {
	info := ReportInfo{}
	assert.IsType(t, &Terminal{}, ForFormat("terminal", MonoTheme(), 80, info))
	assert.IsType(t, &JSON{}, ForFormat("json", MonoTheme(), 80, info))
	assert.IsType(t, &LLM{}, ForFormat("llm", MonoTheme(), 80, info))
	assert.IsType(t, &LLM{}, ForFormat("bogus", MonoTheme(), 80, info))
}

func TestThemeByName(t *testing.T) {
	for _, name := range ThemeNames {
		assert.Equal(t, name, ThemeByName(name).Name)
	}
	assert.Equal(t, "default", ThemeByName("unknown").Name)
}

func TestTheme_ClassStyle(t *testing.T) {
	th := DefaultTheme()
	assert.Equal(t, th.Error.Render("x"), th.ClassStyle(ctslog.ClassFail).Render("x"))
	assert.Equal(t, th.Muted.Render("x"), th.ClassStyle(ctslog.ClassOther).Render("x"))
}
