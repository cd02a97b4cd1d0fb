package batch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appops-dev/appops/internal/domain"
)

func TestExpandTemplate(t *testing.T) {
	got, err := ExpandTemplate([]string{"a", "b"}, "ps:scale %app% web=2", DefaultPlaceholder)
	require.NoError(t, err)
	assert.Equal(t, []string{"ps:scale a web=2", "ps:scale b web=2"}, got)
}

func TestExpandTemplate_DefaultsAndTrimming(t *testing.T) {
	got, err := ExpandTemplate([]string{" blog ", "", "api"}, "logs %app%", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"logs blog", "logs api"}, got)
}

func TestExpandTemplate_CustomPlaceholder(t *testing.T) {
	got, err := ExpandTemplate([]string{"blog"}, "domains:report {{app}}", "{{app}}")
	require.NoError(t, err)
	assert.Equal(t, []string{"domains:report blog"}, got)
}

func TestExpandTemplate_PlaceholderCount(t *testing.T) {
	for _, template := range []string{"apps:list", "copy %app% %app%"} {
		t.Run(template, func(t *testing.T) {
			_, err := ExpandTemplate([]string{"blog"}, template, DefaultPlaceholder)
			assert.True(t, errors.Is(err, domain.ErrInvalidTemplate))
		})
	}
}
