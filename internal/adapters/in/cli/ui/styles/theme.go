package styles

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

// Theme contains the composed styles of the CLI.
var Theme = struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Muted   lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	ListItem   lipgloss.Style
	ListBullet lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary),

	Heading: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary),

	Muted: lipgloss.NewStyle().
		Foreground(ColorTextMuted),

	Success: lipgloss.NewStyle().
		Foreground(ColorSuccess),

	Error: lipgloss.NewStyle().
		Foreground(ColorError),

	Warning: lipgloss.NewStyle().
		Foreground(ColorWarning),

	Info: lipgloss.NewStyle().
		Foreground(ColorInfo),

	ListItem: lipgloss.NewStyle().
		Foreground(ColorText),

	ListBullet: lipgloss.NewStyle().
		Foreground(ColorPrimary),
}

// RenderListItem returns a formatted list item with bullet.
func RenderListItem(item string) string {
	return Theme.ListBullet.Render(IconBullet) + " " + Theme.ListItem.Render(item)
}

// RenderServer returns a server heading.
func RenderServer(name string) string {
	return Theme.Heading.Render(IconServer + " " + name)
}

// RenderAppPrefix returns the "app │" gutter of a live output line. An app
// keeps the same color across calls.
func RenderAppPrefix(app string, width int) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(app))
	color := AppColors[int(h.Sum32()%uint32(len(AppColors)))]

	style := lipgloss.NewStyle().Foreground(color)
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(app) + " " + Theme.Muted.Render(IconPipe) + " "
}

// RenderError returns a styled error message.
func RenderError(msg string) string {
	return Theme.Error.Render(IconError + " " + msg)
}

// RenderSuccess returns a styled success message.
func RenderSuccess(msg string) string {
	return Theme.Success.Render(IconSuccess + " " + msg)
}

// RenderWarning returns a styled warning message.
func RenderWarning(msg string) string {
	return Theme.Warning.Render(IconWarning + " " + msg)
}
