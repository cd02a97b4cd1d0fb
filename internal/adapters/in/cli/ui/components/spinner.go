package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/appops-dev/appops/internal/adapters/in/cli/ui/styles"
)

// SpinnerModel wraps the bubbles spinner with appops styling.
type SpinnerModel struct {
	spinner spinner.Model
	message string
	style   lipgloss.Style
}

// SpinnerOption configures a SpinnerModel.
type SpinnerOption func(*SpinnerModel)

// NewSpinner creates a new spinner with appops styling.
func NewSpinner(opts ...SpinnerOption) SpinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.ColorPrimary)

	m := SpinnerModel{
		spinner: s,
		message: "Loading...",
		style:   styles.Theme.Muted,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithMessage sets the spinner message.
func WithMessage(msg string) SpinnerOption {
	return func(m *SpinnerModel) {
		m.message = msg
	}
}

// WithSpinnerType sets the spinner animation type.
func WithSpinnerType(t spinner.Spinner) SpinnerOption {
	return func(m *SpinnerModel) {
		m.spinner.Spinner = t
	}
}

// Init implements tea.Model.
func (m SpinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m SpinnerModel) View() string {
	return m.spinner.View() + " " + m.style.Render(m.message)
}

// SpinnerMiniDot is the spinner used while waiting on a server.
var SpinnerMiniDot = spinner.MiniDot
