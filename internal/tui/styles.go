package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors matching the plain output scheme in internal/output
var (
	colorCyan    = lipgloss.Color("6")  // Cyan - train numbers, focus
	colorYellow  = lipgloss.Color("3")  // Yellow - waitlist, loading
	colorRed     = lipgloss.Color("1")  // Red - errors, invalid input
	colorGreen   = lipgloss.Color("2")  // Green - available seats
	colorMagenta = lipgloss.Color("5")  // Magenta - fares
	colorWhite   = lipgloss.Color("15") // White - times, text
	colorGray    = lipgloss.Color("8")  // Gray - muted text
)

// Text styles
var (
	styleTime      = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleTrain     = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleFare      = lipgloss.NewStyle().Foreground(colorMagenta)
	styleAvailable = lipgloss.NewStyle().Foreground(colorGreen)
	styleWaitlist  = lipgloss.NewStyle().Foreground(colorYellow)
	styleMuted     = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader    = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
)

// Panel border styles
var (
	stylePanelFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorCyan)

	stylePanelNormal = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorGray)
)

// Selected item in a list
var styleSelected = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)

// Status bar at the bottom
var styleStatusBar = lipgloss.NewStyle().
	Foreground(colorGray).
	Background(lipgloss.Color("0"))

// Loading indicator
var styleLoading = lipgloss.NewStyle().Foreground(colorYellow).Italic(true)

// Error text
var styleError = lipgloss.NewStyle().Foreground(colorRed)

// Logo/brand style
var styleLogo = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
