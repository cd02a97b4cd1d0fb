package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/appops-dev/appops/internal/adapters/in/cli/ui/components"
)

// isInteractive reports whether w is a terminal a spinner can be drawn on.
var isInteractive = func(w io.Writer) bool {
	if t := os.Getenv("TERM"); t == "" || t == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// withSpinner runs query while a spinner turns on stderr, leaving stdout to
// the result. Without a terminal on stderr the query just runs.
//
// The query always runs to completion: an interrupt stops the spinner and
// cancels s.ctx, which the query observes.
func withSpinner[T any](cmd *cobra.Command, s *state, message string, query func(ctx context.Context) (T, error)) (T, error) {
	errOut := cmd.ErrOrStderr()
	if !isInteractive(errOut) {
		return query(s.ctx)
	}

	p := tea.NewProgram(
		newWaitSpinnerModel(message),
		tea.WithContext(s.ctx),
		tea.WithInput(nil),
		tea.WithOutput(errOut),
	)

	var (
		value T
		err   error
	)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		value, err = query(s.ctx)
		p.Send(queryDoneMsg{})
	}()

	_, _ = p.Run()
	<-finished
	fmt.Fprint(errOut, "\r\033[K")
	return value, err
}

// queryDoneMsg stops the spinner once the query has returned.
type queryDoneMsg struct{}

type waitSpinnerModel struct {
	spinner  components.SpinnerModel
	finished bool
}

func newWaitSpinnerModel(message string) waitSpinnerModel {
	return waitSpinnerModel{
		spinner: components.NewSpinner(
			components.WithMessage(message),
			components.WithSpinnerType(components.SpinnerMiniDot),
		),
	}
}

func (m waitSpinnerModel) Init() tea.Cmd {
	return m.spinner.Init()
}

func (m waitSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case queryDoneMsg:
		m.finished = true
		return m, tea.Quit
	default:
		updated, cmd := m.spinner.Update(msg)
		if spinnerModel, ok := updated.(components.SpinnerModel); ok {
			m.spinner = spinnerModel
		}
		return m, cmd
	}
}

func (m waitSpinnerModel) View() string {
	if m.finished {
		return ""
	}
	return m.spinner.View()
}
