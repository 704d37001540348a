// Package browse is an interactive terminal pager over parsed CTS records.
package browse

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dkoosis/ctsreport/pkg/ctslog"
	"github.com/dkoosis/ctsreport/pkg/mapper"
	"github.com/dkoosis/ctsreport/pkg/message"
	"github.com/dkoosis/ctsreport/pkg/paginate"
	"github.com/dkoosis/ctsreport/pkg/render"
	"github.com/mattn/go-runewidth"
)

// Run launches the pager and blocks until the user quits or ctx is done.
func Run(ctx context.Context, records []ctslog.Record, pageSize int, theme render.Theme) error {
	program := tea.NewProgram(New(records, pageSize, theme), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Model is the bubbletea model for the pager.
type Model struct {
	pages    [][]ctslog.Record
	page     int // 0-based
	selected int // index within the current page
	theme    render.Theme
	viewport viewport.Model

	ready       bool
	width       int
	height      int
	listWidth   int
	detailWidth int
}

// New splits records into pages of pageSize and selects the first record.
func New(records []ctslog.Record, pageSize int, theme render.Theme) Model {
	vp := viewport.New(0, 0)
	m := Model{
		pages:    paginate.Split(records, pageSize),
		theme:    theme,
		viewport: vp,
	}
	m.refreshViewport()
	return m
}

// Page returns the 1-based current page number.
func (m Model) Page() int { return m.page + 1 }

// Nav returns the pagination state of the current page.
func (m Model) Nav() paginate.Nav { return paginate.NewNav(m.page+1, len(m.pages)) }

// Selected returns the highlighted record, or false when there are no records.
func (m Model) Selected() (ctslog.Record, bool) {
	if len(m.pages) == 0 {
		return ctslog.Record{}, false
	}
	return m.pages[m.page][m.selected], true
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.refreshViewport()
			}
			return m, nil
		case "down", "j":
			if len(m.pages) > 0 && m.selected < len(m.pages[m.page])-1 {
				m.selected++
				m.refreshViewport()
			}
			return m, nil
		case "right", "n":
			if m.page < len(m.pages)-1 {
				m.page++
				m.selected = 0
				m.refreshViewport()
			}
			return m, nil
		case "left", "p":
			if m.page > 0 {
				m.page--
				m.selected = 0
				m.refreshViewport()
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.listWidth = min(max(m.width/2, 24), m.width-20)
		m.detailWidth = max(m.width-m.listWidth-1, 10)
		m.viewport.Width = m.detailWidth - 4
		m.viewport.Height = max(msg.Height-6, 3)
		m.ready = true
		m.refreshViewport()
		return m, nil
	}

	// remaining keys scroll the detail pane
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) refreshViewport() {
	r, ok := m.Selected()
	if !ok {
		m.viewport.SetContent("No test cases.")
		return
	}
	m.viewport.SetContent(Detail(r))
	m.viewport.GotoTop()
}

// Detail formats one record for the detail pane.
func Detail(r ctslog.Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", r.CasePath)
	fmt.Fprintf(&sb, "Status:   %s\n", r.Status)
	fmt.Fprintf(&sb, "Duration: %s\n", mapper.FormatMicros(r.DurationMicros))
	msg := message.Normalize(r.Message)
	if msg.Kind != message.Empty {
		fmt.Fprintf(&sb, "\n%s\n", msg.Text)
	}
	return sb.String()
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if len(m.pages) == 0 {
		return "No test cases.\n"
	}

	nav := m.Nav()
	title := m.theme.Bold.Render(fmt.Sprintf("ctsreport · page %d/%d · case %d/%d",
		nav.Page, nav.Total, m.selected+1, len(m.pages[m.page])))

	contentHeight := max(m.height-4, 3)
	list := m.renderList(contentHeight)
	listPanel := lipgloss.NewStyle().Width(m.listWidth).Render(list)
	detailPanel := lipgloss.NewStyle().
		Width(m.detailWidth).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Render(m.viewport.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, detailPanel)
	help := m.theme.Muted.Render("j/k move • n/p page • pgup/pgdn scroll • q quit")
	return lipgloss.JoinVertical(lipgloss.Left, title, panels, help)
}

// renderList shows a window of the current page that keeps the selection visible.
func (m Model) renderList(height int) string {
	rows := m.pages[m.page]
	start := 0
	if m.selected >= height {
		start = m.selected - height + 1
	}
	end := min(start+height, len(rows))

	nameWidth := max(m.listWidth-4, 8)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		r := rows[i]
		marker := "  "
		if i == m.selected {
			marker = "▶ "
		}
		icon := m.theme.ClassStyle(r.Status.Class()).Render(m.classIcon(r.Status.Class()))
		name := runewidth.Truncate(r.CasePath, nameWidth, "…")
		if i == m.selected {
			name = m.theme.Bold.Render(name)
		}
		lines = append(lines, marker+icon+" "+name)
	}
	return strings.Join(lines, "\n")
}

func (m Model) classIcon(c ctslog.Class) string {
	switch c {
	case ctslog.ClassPass:
		return m.theme.Icons.Pass
	case ctslog.ClassFail:
		return m.theme.Icons.Fail
	case ctslog.ClassNotSupported:
		return m.theme.Icons.Warn
	default:
		return m.theme.Icons.Bullet
	}
}
