package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type welcomeModel struct {
	loaded bool
	count  int
	ready  bool // true once the check has completed
}

// checkIndexMsg is sent after trying to load the saved index.
type checkIndexMsg struct {
	loaded bool
	count  int
}

func checkIndex(cfg Config) tea.Cmd {
	return func() tea.Msg {
		loaded := cfg.Service.LoadPersistedIndex()
		return checkIndexMsg{loaded: loaded, count: cfg.Service.IndexedCount()}
	}
}

func (m welcomeModel) Update(msg tea.Msg) (welcomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case checkIndexMsg:
		m.loaded = msg.loaded
		m.count = msg.count
		m.ready = true
	}
	return m, nil
}

func (m welcomeModel) View(width, height int) string {
	s := "\n"
	s += titleStyle.Render("  ◆ Spyglass") + "\n"
	s += subtitleStyle.Render("  Find anything under your home directory") + "\n\n"

	if !m.ready {
		s += dimStyle.Render("  Loading saved index...") + "\n"
		return s
	}
	if m.loaded {
		s += successStyle.Render(fmt.Sprintf("  ✓ %d entries loaded", m.count)) + "\n"
	} else {
		s += warnStyle.Render("  ✗ No saved index, building one") + "\n"
	}
	return s
}
