// Package styles provides the styling used by the appops CLI.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Teal400   = lipgloss.Color("#2dd4bf")
	Teal600   = lipgloss.Color("#0d9488")
	Sky400    = lipgloss.Color("#38bdf8")
	Amber400  = lipgloss.Color("#fbbf24")
	Rose500   = lipgloss.Color("#f43f5e")
	Violet400 = lipgloss.Color("#a78bfa")

	Neutral200 = lipgloss.Color("#e5e5e5")
	Neutral500 = lipgloss.Color("#737373")
	Neutral700 = lipgloss.Color("#404040")

	// Semantic colors
	ColorPrimary   = Teal400
	ColorSecondary = Sky400
	ColorSuccess   = Teal400
	ColorWarning   = Amber400
	ColorError     = Rose500
	ColorInfo      = Sky400

	ColorText      = Neutral200
	ColorTextMuted = Neutral500
	ColorBorder    = Neutral700
)

// AppColors cycle over apps in live output so interleaved sessions stay readable.
var AppColors = []lipgloss.Color{Teal400, Sky400, Violet400, Amber400, Teal600}
