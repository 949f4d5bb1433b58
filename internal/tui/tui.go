package tui

import (
	"spyglass/internal/index"

	tea "github.com/charmbracelet/bubbletea"
)

// ViewState represents which screen is active.
type ViewState int

const (
	ViewWelcome ViewState = iota
	ViewSearch
)

// programRef is an indirect pointer to the tea.Program so background goroutines
// can send messages. It must be set after tea.NewProgram returns but before Run.
type programRef struct {
	p *tea.Program
}

// Config holds configuration passed from the CLI layer.
type Config struct {
	Service *index.Service
	// Rebuild starts a fresh build even when a saved index loads.
	Rebuild bool

	// program is set internally so background goroutines can send messages.
	program *programRef
}

// Model is the top-level Bubble Tea model.
type Model struct {
	state  ViewState
	config Config
	width  int
	height int

	welcome  welcomeModel
	indexing indexingModel
	search   searchModel

	// Selected is the path chosen with Enter, if any.
	Selected string
}

// New creates a new TUI model with the given config.
func New(cfg Config) Model {
	return Model{
		state:    ViewWelcome,
		config:   cfg,
		indexing: newIndexingModel(),
		search:   newSearchModel(cfg.Service),
	}
}

func (m Model) Init() tea.Cmd {
	return checkIndex(m.config)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.setWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+r":
			if m.state == ViewSearch {
				cmd := m.startBuild()
				return m, cmd
			}
		}

	case checkIndexMsg:
		m.welcome, _ = m.welcome.Update(msg)
		m.state = ViewSearch
		m.search.refresh()
		cmd := m.search.focus()
		if !msg.loaded || m.config.Rebuild {
			cmd = tea.Batch(cmd, m.startBuild())
		}
		return m, cmd

	case indexDoneMsg:
		m.indexing, _ = m.indexing.Update(msg)
		m.search.refresh()
		return m, nil

	case progressMsg, buildStartedMsg:
		var cmd tea.Cmd
		m.indexing, cmd = m.indexing.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.state {
	case ViewWelcome:
		m.welcome, cmd = m.welcome.Update(msg)
		return m, cmd

	case ViewSearch:
		var spin tea.Cmd
		m.indexing, spin = m.indexing.Update(msg)
		var chosen bool
		m.search, cmd, chosen = m.search.Update(msg)
		if chosen {
			m.Selected = m.search.selected()
			return m, tea.Quit
		}
		return m, tea.Batch(spin, cmd)
	}

	return m, nil
}

func (m *Model) startBuild() tea.Cmd {
	if m.indexing.active {
		return nil
	}
	m.indexing.begin()
	return tea.Batch(m.indexing.spinner.Tick, startBuild(m.config))
}

func (m Model) View() string {
	switch m.state {
	case ViewWelcome:
		return m.welcome.View(m.width, m.height)
	case ViewSearch:
		return m.search.View(m.width, m.height, m.indexing.View())
	}
	return ""
}

// Run starts the TUI program and returns the path selected with Enter,
// or "" when the user quit without choosing.
func Run(cfg Config) (string, error) {
	ref := &programRef{}
	cfg.program = ref
	cfg.Service.OnComplete(func(total int) {
		if ref.p != nil {
			ref.p.Send(indexDoneMsg{total: total})
		}
	})

	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	ref.p = p
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if fm, ok := final.(Model); ok {
		return fm.Selected, nil
	}
	return "", nil
}
