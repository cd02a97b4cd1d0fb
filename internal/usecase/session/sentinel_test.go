package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appops-dev/appops/internal/domain"
)

func TestDefaultSentinel(t *testing.T) {
	s := DefaultSentinel()
	assert.Equal(t, "version", s.Command)
	assert.True(t, s.Pattern.MatchString("dokku version 0.34.4\n"))
	assert.False(t, s.Pattern.MatchString("dokku version 0.34.4"))
	assert.False(t, s.Pattern.MatchString("dokku version master\n"))
	assert.False(t, s.Pattern.MatchString("web: 1\n"))
}

func TestNewSentinel(t *testing.T) {
	s, err := NewSentinel(" version ", `VERSION \d+\.\d+\.\d+\n`)
	require.NoError(t, err)
	assert.Equal(t, "version", s.Command)

	tests := []struct {
		name    string
		command string
		pattern string
	}{
		{name: "empty command", command: "", pattern: `x\n`},
		{name: "multi-line command", command: "version\nls", pattern: `x\n`},
		{name: "invalid regex", command: "version", pattern: `(\n`},
		{name: "pattern without newline", command: "version", pattern: `dokku version`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSentinel(tt.command, tt.pattern)
			assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
		})
	}
}

func TestBuildScript(t *testing.T) {
	script, err := BuildScript([]string{"ps:scale blog", "ps:scale api"}, DefaultSentinel())
	require.NoError(t, err)
	assert.Equal(t, "ps:scale blog\nversion\nps:scale api\nversion\n", script)
}

func TestBuildScript_RejectsFramingBreakers(t *testing.T) {
	tests := []struct {
		name     string
		commands []string
	}{
		{name: "line break", commands: []string{"ps:scale blog\napps:destroy blog"}},
		{name: "carriage return", commands: []string{"ps:scale blog\r"}},
		{name: "blank command", commands: []string{"  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildScript(tt.commands, DefaultSentinel())
			assert.True(t, errors.Is(err, domain.ErrInvalidTemplate))
		})
	}
}
