package tui

import (
	"fmt"
	"strings"

	"spyglass/internal/index"
	"spyglass/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// reserved lines: title, input, progress, blank, status bar, help.
const chromeLines = 7

type searchModel struct {
	svc     *index.Service
	input   textinput.Model
	query   string
	results []store.Entry
	cursor  int
	width   int
}

func newSearchModel(svc *index.Service) searchModel {
	ti := textinput.New()
	ti.Placeholder = "Search files and folders..."
	ti.CharLimit = 256
	ti.Prompt = "› "
	return searchModel{svc: svc, input: ti}
}

func (m *searchModel) focus() tea.Cmd {
	return m.input.Focus()
}

func (m *searchModel) setWidth(w int) {
	m.width = w
	m.input.Width = max(w-4, 10)
}

// refresh re-runs the current query, e.g. after a new generation was published.
func (m *searchModel) refresh() {
	m.results = m.svc.Search(m.query)
	if m.cursor >= len(m.results) {
		m.cursor = max(len(m.results)-1, 0)
	}
}

func (m searchModel) selected() string {
	if m.cursor < len(m.results) {
		return m.results[m.cursor].Path
	}
	return ""
}

// Update returns true as its last value when the user picked a result.
func (m searchModel) Update(msg tea.Msg) (searchModel, tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			return m, nil, len(m.results) > 0
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil, false
		case "down", "ctrl+n":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != m.query {
		m.query = q
		m.cursor = 0
		m.refresh()
	}
	return m, cmd, false
}

func (m searchModel) View(width, height int, progressLine string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("◆ Spyglass") + "\n")
	b.WriteString(m.input.View() + "\n")
	b.WriteString(progressLine + "\n\n")

	rows := height - chromeLines
	if rows < 1 {
		rows = 10
	}

	if len(strings.TrimSpace(m.query)) < 2 {
		b.WriteString(dimStyle.Render("  Type at least two characters") + "\n")
	} else if len(m.results) == 0 {
		b.WriteString(dimStyle.Render("  No matches") + "\n")
	}

	// Keep the cursor on screen.
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(m.results))
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(i, width) + "\n")
	}

	status := fmt.Sprintf("%d results · %d indexed", len(m.results), m.svc.IndexedCount())
	b.WriteString("\n" + statusBarStyle.Render(status) + "\n")
	b.WriteString(helpStyle.Render("↑/↓ move · enter select · ctrl+r rebuild · esc quit"))
	return b.String()
}

func (m searchModel) renderRow(i, width int) string {
	e := m.results[i]
	name := listItemStyle.Render(e.Name)
	if e.IsDirectory {
		name = dirStyle.Render(e.Name + "/")
	}

	marker := "  "
	if i == m.cursor {
		marker = selectedStyle.Render("▸ ")
	}

	room := len(e.Path)
	if width > 0 {
		room = width - len(e.Name) - 6
	}
	return marker + name + "  " + dimStyle.Render(truncateLeft(e.Path, room))
}

// truncateLeft keeps the tail of s, which is the informative end of a path.
func truncateLeft(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return "…" + string(r[len(r)-n+1:])
}
