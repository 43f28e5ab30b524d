// Package tui provides the terminal rendition of the portfolio.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	colorPrimary   = lipgloss.Color("#8B5CF6")
	colorSecondary = lipgloss.Color("#06B6D4")
	colorSuccess   = lipgloss.Color("#22C55E")
	colorWarning   = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorBorder    = lipgloss.Color("#3F3F46")
	colorSurface   = lipgloss.Color("#18181B")
	colorText      = lipgloss.Color("#F4F4F5")
	colorTextDim   = lipgloss.Color("#A1A1AA")
	colorTextMute  = lipgloss.Color("#52525B")
)

var (
	navStyle = lipgloss.NewStyle().
			Padding(0, 2)

	// Past the scroll threshold the bar gets a backdrop and a rule.
	navScrolledStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Background(colorSurface).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(colorBorder)

	brandStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	linkStyle = lipgloss.NewStyle().
			Foreground(colorText)

	ctaStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorPrimary).
			Padding(0, 1)

	menuStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(colorTextDim)

	headingStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true).
			MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	bodyStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	tagStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	featuredStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	panelFocusedStyle = panelStyle.
				BorderForeground(colorPrimary)

	resultStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorSecondary).
			Foreground(colorText).
			Padding(0, 1)

	loadingStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorTextMute).
			Italic(true)

	copiedStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	noticeStyles = map[string]lipgloss.Style{
		"success": lipgloss.NewStyle().Foreground(colorSuccess),
		"warning": lipgloss.NewStyle().Foreground(colorWarning),
		"error":   lipgloss.NewStyle().Foreground(colorError),
	}
)

// faded mutes a style for sections that have not entered the viewport yet.
// Layout properties are kept so the row count does not change on entrance.
func faded(s lipgloss.Style, hidden bool) lipgloss.Style {
	if !hidden {
		return s
	}
	return s.Foreground(colorTextMute).UnsetBackground().UnsetBold()
}
