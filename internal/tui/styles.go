package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A8E05F")).
			Background(lipgloss.Color("#1e2a1e")).
			Padding(0, 2)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B8E23")).
			Background(lipgloss.Color("#1e2a1e"))

	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#333333"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Padding(1, 2)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	selectedNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#A8E05F")).
				Bold(true)

	targetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5599FF"))

	dirStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5599FF")).
			Bold(true)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#777777")).
				Italic(true)

	hotkeysStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Padding(0, 2)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8E05F")).
			Padding(0, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4444")).
			Padding(0, 2)

	statusRunning = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	statusStopped = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))

	previewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 2)

	previewEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#555555")).
				Padding(0, 2)

	pickerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#A8E05F")).
			Padding(1, 2).
			Foreground(lipgloss.Color("#FFFFFF"))

	pickerCurrentStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6B8E23"))
)
