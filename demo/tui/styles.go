package tui

import "github.com/charmbracelet/lipgloss"

// Marketplace palette
const (
	colorBrand  = "#7D56F4"
	colorPrice  = "#F2C14E"
	colorMinted = "#3DDC97"
	colorMuted  = "#7A7A8C"
	colorAlert  = "#FF5F5F"
	colorInk    = "#F5F5F7"
)

var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorBrand)).
		MarginTop(1).
		MarginBottom(1)

	// PriceStyle highlights ETH amounts and pricing progress
	PriceStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorPrice))

	// MintedBadgeStyle marks listings that already have a token
	MintedBadgeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorMinted))

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorAlert))

	MutedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorMuted))

	// SelectedRowStyle is the list row under the cursor
	SelectedRowStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorBrand))

	// DetailCardStyle frames the selected listing
	DetailCardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorBrand)).
		Padding(0, 2).
		Width(72)

	// SearchBarStyle renders the query being typed
	SearchBarStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorInk)).
		Background(lipgloss.Color(colorBrand)).
		Padding(0, 1)

	VideoTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorInk))
)
