package cli

import (
	"bytes"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitSpinnerModel_QuitsWhenQueryDone(t *testing.T) {
	m := newWaitSpinnerModel("Listing apps...")
	assert.Contains(t, m.View(), "Listing apps...")

	updated, cmd := m.Update(queryDoneMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	final, ok := updated.(waitSpinnerModel)
	require.True(t, ok)
	assert.True(t, final.finished)
	assert.Empty(t, final.View())
}

func TestIsInteractive_NotATerminal(t *testing.T) {
	assert.False(t, isInteractive(&bytes.Buffer{}))
	t.Setenv("TERM", "dumb")
	assert.False(t, isInteractive(io.Discard))
}

func TestReadCommand_NoSpinnerWithoutTerminal(t *testing.T) {
	out, err := run(t, singleServer(&fakePlatform{apps: []string{"blog"}}), "prod", "apps", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Listing apps...")
	assert.NotContains(t, out, "\033[K")
}

func TestReadCommand_SpinnerOnTerminal(t *testing.T) {
	restore := isInteractive
	isInteractive = func(io.Writer) bool { return true }
	t.Cleanup(func() { isInteractive = restore })

	p := &fakePlatform{apps: []string{"blog", "api"}}
	fleet := singleServer(p)

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd(testLoader(t, fleet, "prod"))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"apps", "list", "-o", "json"})
	require.NoError(t, cmd.Execute())

	assert.JSONEq(t, `["blog","api"]`, stdout.String())
	assert.Contains(t, stderr.String(), "\r\033[K")
	assert.NotContains(t, stdout.String(), "Listing apps...")
}
