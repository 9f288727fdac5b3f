package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#0EA5E9")
	outlineFg = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#A7F3D0"}
	borderCol = lipgloss.Color("#243141")
	markerFg  = lipgloss.Color("#FFA500")

	appStyle     = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(baseDimFg)
	outlineStyle = lipgloss.NewStyle().Foreground(outlineFg)
	markerStyle  = lipgloss.NewStyle().Foreground(markerFg)
)
