package browse

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dkoosis/ctsreport/pkg/ctslog"
	"github.com/dkoosis/ctsreport/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(n int) []ctslog.Record {
	out := make([]ctslog.Record, n)
	for i := range out {
		out[i] = ctslog.Record{
			CasePath:       fmt.Sprintf("dEQP-VK.case.%d", i),
			DurationMicros: int64(i),
			Status:         ctslog.StatusPass,
		}
	}
	return out
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func selectedPath(t *testing.T, m Model) string {
	t.Helper()
	r, ok := m.Selected()
	require.True(t, ok)
	return r.CasePath
}

func TestModel_MovesSelectionWithinPage(t *testing.T) {
	m := New(records(5), 100, render.MonoTheme())
	assert.Equal(t, "dEQP-VK.case.0", selectedPath(t, m))

	m = press(t, m, "j", "j")
	assert.Equal(t, "dEQP-VK.case.2", selectedPath(t, m))

	m = press(t, m, "k", "k", "k")
	assert.Equal(t, "dEQP-VK.case.0", selectedPath(t, m), "selection stops at the first row")

	m = press(t, m, "j", "j", "j", "j", "j", "j")
	assert.Equal(t, "dEQP-VK.case.4", selectedPath(t, m), "selection stops at the last row")
}

func TestModel_ChangesPages(t *testing.T) {
	m := New(records(250), 100, render.MonoTheme())
	assert.Equal(t, 1, m.Page())
	assert.Equal(t, 3, m.Nav().Total)

	m = press(t, m, "j", "n")
	assert.Equal(t, 2, m.Page())
	assert.Equal(t, "dEQP-VK.case.100", selectedPath(t, m), "page change resets selection")

	m = press(t, m, "n", "n")
	assert.Equal(t, 3, m.Page())
	assert.False(t, m.Nav().HasNext)

	m = press(t, m, "p", "p", "p")
	assert.Equal(t, 1, m.Page())
	assert.False(t, m.Nav().HasPrev)
}

func TestModel_QuitKey(t *testing.T) {
	m := New(records(1), 100, render.MonoTheme())
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ViewAfterResize(t *testing.T) {
	recs := records(3)
	recs[1].Status = ctslog.StatusFail
	recs[1].Message = `assertion failed\nat line 3`

	m := New(recs, 100, render.MonoTheme())
	assert.Equal(t, "Loading...", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = press(t, next.(Model), "j")
	view := m.View()

	assert.Contains(t, view, "page 1/1")
	assert.Contains(t, view, "case 2/3")
	assert.Contains(t, view, "dEQP-VK.case.0")
	assert.Contains(t, view, "assertion failed")
}

func TestDetail(t *testing.T) {
	out := Detail(ctslog.Record{
		CasePath:       "dEQP-VK.api.x",
		Status:         ctslog.StatusNotSupported,
		DurationMicros: 1500,
		Message:        `{"a":1}`,
	})
	assert.Contains(t, out, "dEQP-VK.api.x")
	assert.Contains(t, out, "Status:   NotSupported")
	assert.Contains(t, out, "Duration: 1.50ms")
	assert.Contains(t, out, "\"a\": 1")
}

func TestModel_Empty(t *testing.T) {
	m := New(nil, 100, render.MonoTheme())
	_, ok := m.Selected()
	assert.False(t, ok)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = press(t, next.(Model), "j", "n")
	assert.Equal(t, "No test cases.\n", m.View())
}
