package ui

import "github.com/charmbracelet/lipgloss"

const (
	userColor      = lipgloss.Color("#0078FF")
	assistantColor = lipgloss.Color("#FFBB00")
	statusColor    = lipgloss.Color("#D0D0D0")
	errorColor     = lipgloss.Color("#FF5F5F")
)

var (
	UserStyle      = lipgloss.NewStyle().Foreground(userColor)
	AssistantStyle = lipgloss.NewStyle().Foreground(assistantColor)
	StatusStyle    = lipgloss.NewStyle().Foreground(statusColor)
	ErrorStyle     = lipgloss.NewStyle().Foreground(errorColor)

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(assistantColor).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(userColor).
			Padding(0, 3).
			Margin(1, 0)
)
