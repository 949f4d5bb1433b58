package tui

import "github.com/charmbracelet/lipgloss"

// Palette: teal accent, blue folders, grey chrome.
const (
	colorAccent = lipgloss.Color("37")
	colorFolder = lipgloss.Color("75")
	colorText   = lipgloss.Color("253")
	colorMuted  = lipgloss.Color("243")
	colorBar    = lipgloss.Color("235")
	colorOK     = lipgloss.Color("114")
	colorWarn   = lipgloss.Color("179")
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	subtitleStyle  = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	successStyle   = lipgloss.NewStyle().Foreground(colorOK)
	warnStyle      = lipgloss.NewStyle().Foreground(colorWarn)
	dimStyle       = lipgloss.NewStyle().Foreground(colorMuted)
	dirStyle       = lipgloss.NewStyle().Foreground(colorFolder).Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	listItemStyle  = lipgloss.NewStyle().Foreground(colorText)
	helpStyle      = dimStyle
	statusBarStyle = lipgloss.NewStyle().Foreground(colorMuted).Background(colorBar).Padding(0, 1)
)
