package tui

import (
	"fmt"
	"time"

	"spyglass/internal/progress"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const pollInterval = 200 * time.Millisecond

type indexingModel struct {
	spinner  spinner.Model
	active   bool
	done     bool
	dropped  bool
	progress progress.Progress
	total    int
	poll     func() progress.Progress
}

func newIndexingModel() indexingModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = selectedStyle
	return indexingModel{spinner: sp}
}

// buildStartedMsg is sent once a build request has been made.
type buildStartedMsg struct {
	admitted bool
	poll     func() progress.Progress
}

// indexDoneMsg is sent by the completion observer.
type indexDoneMsg struct {
	total int
}

// progressMsg carries a polled progress snapshot.
type progressMsg progress.Progress

func startBuild(cfg Config) tea.Cmd {
	return func() tea.Msg {
		svc := cfg.Service
		return buildStartedMsg{admitted: svc.StartIndexBuild(), poll: svc.Progress}
	}
}

func pollProgress(poll func() progress.Progress) tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return progressMsg(poll())
	})
}

func (m *indexingModel) begin() {
	m.active = true
	m.done = false
	m.dropped = false
	m.progress = progress.Progress{}
}

func (m indexingModel) Update(msg tea.Msg) (indexingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case buildStartedMsg:
		// A dropped request still polls: the running build is the one shown.
		m.dropped = !msg.admitted
		m.poll = msg.poll
		return m, pollProgress(m.poll)
	case progressMsg:
		m.progress = progress.Progress(msg)
		if !m.active || m.progress.IsComplete {
			return m, nil
		}
		return m, pollProgress(m.poll)
	case indexDoneMsg:
		m.active = false
		m.done = true
		m.total = msg.total
		return m, nil
	case spinner.TickMsg:
		if !m.active {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m indexingModel) View() string {
	if m.active {
		p := m.progress
		line := fmt.Sprintf("%s Indexing: %d / ~%d folders, %d entries",
			m.spinner.View(), p.IndexedFolders, p.TotalFolders, p.TotalFiles)
		if m.dropped {
			line += " (already running)"
		}
		return line
	}
	if m.done {
		return successStyle.Render(fmt.Sprintf("✓ Index rebuilt: %d entries", m.total))
	}
	return ""
}
